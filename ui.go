package animator

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// controlsHeight is the height in pixels of the bottom control strip. The
// canvas region occupies the rest of the window above it.
const controlsHeight = 88

// controlPanel wraps the scrub slider, the mode toggle, and the status line.
type controlPanel struct {
	ui     *ebitenui.UI
	slider *widget.Slider
	toggle *widget.Button
	status *widget.Text

	// suppressEvents, when true, causes the changed handlers to ignore
	// programmatic updates so they aren't treated as user input.
	suppressEvents bool
}

// newControlPanel builds the bottom strip with colored nine-slices and the
// built-in basic font, so no theme fonts need to be loaded.
func newControlPanel(maxFrame int, onFrame func(frame int), onToggle func()) *controlPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff})
	trackImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x4c, A: 0xff})
	handleImg := imageui.NewNineSliceColor(color.NRGBA{R: 0xb0, G: 0xb0, B: 0xc0, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x3a, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	p := &controlPanel{}

	p.status = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	p.slider = widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(0, maxFrame),
		widget.SliderOpts.Images(
			&widget.SliderTrackImage{Idle: trackImg, Hover: trackImg},
			&widget.ButtonImage{Idle: handleImg, Pressed: handleImg},
		),
		widget.SliderOpts.FixedHandleSize(10),
		widget.SliderOpts.PageSizeFunc(func() int { return 1 }),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			if p.suppressEvents || onFrame == nil {
				return
			}
			onFrame(args.Current)
		}),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(200, 16),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)

	p.toggle = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Prerendered: Off", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 24),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if p.suppressEvents || onToggle == nil {
				return
			}
			onToggle()
		}),
	)

	strip := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, controlsHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	strip.AddChild(p.status)
	strip.AddChild(p.slider)
	strip.AddChild(p.toggle)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(strip)

	p.ui = &ebitenui.UI{Container: root}
	return p
}

// SetFrame moves the slider without firing the changed handler.
func (p *controlPanel) SetFrame(frame int) {
	if p == nil || p.slider == nil {
		return
	}
	p.suppressEvents = true
	p.slider.Current = frame
	p.suppressEvents = false
}

// SetMaxFrame updates the slider bound after a frame callback re-registration.
func (p *controlPanel) SetMaxFrame(maxFrame int) {
	if p == nil || p.slider == nil {
		return
	}
	p.suppressEvents = true
	p.slider.Max = maxFrame
	if p.slider.Current > maxFrame {
		p.slider.Current = maxFrame
	}
	p.suppressEvents = false
}

// SetStatus refreshes the toggle label and the status line for the given
// state.
func (p *controlPanel) SetStatus(mode Mode, frame, frames int) {
	if p == nil {
		return
	}
	if p.toggle != nil {
		label := "Prerendered: Off"
		if mode == ModeCached {
			label = "Prerendered: On"
		}
		p.toggle.SetText(label)
	}
	if p.status != nil {
		p.status.Label = fmt.Sprintf("frame %d/%d  (%s)", frame+1, frames, mode)
	}
}
