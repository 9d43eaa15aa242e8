package assets

import "github.com/milk9111/viewangle/view"

//go:generate go run ../cmd/viewanglegen --dir . --type ToadSheets --out toadsheets_view.go

// ToadSheets registers through its generated ViewEntries. Its croak sheet is
// drawn facing the camera and shown for every angle.
type ToadSheets struct {
	IdleFront view.ImageHandle  `view:"actor=toad,action=idle,angle=front,kind=image"`
	IdleRight view.ImageHandle  `view:"angle=right,kind=image"`
	IdleBack  view.ImageHandle  `view:"angle=back,kind=image"`
	Strip     view.LayoutHandle `view:"angle=any,kind=atlas_layout"`

	Croak      view.ImageHandle  `view:"action=croak,angle=any,kind=image"`
	CroakStrip view.LayoutHandle `view:"angle=any,kind=atlas_layout"`
}
