package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// HoldButton fires its action only after being held down for a configured
// time, shown as a progress fill. A plain click does nothing, which keeps
// alert dismissal deliberate. The hold timing itself is driven by the owner
// through SetProgress.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	OnHoldStart func()
	OnHoldEnd   func()

	holding  bool
	hovered  bool
	progress float64
}

func NewHoldButton(text string, onHoldStart, onHoldEnd func()) *HoldButton {
	b := &HoldButton{
		Text:        text,
		OnHoldStart: onHoldStart,
		OnHoldEnd:   onHoldEnd,
	}
	b.ExtendBaseWidget(b)
	return b
}

// SetProgress updates the fill, 0 to 1
func (b *HoldButton) SetProgress(progress float64) {
	b.progress = progress
	b.Refresh()
}

// Tapped fires on release; hold behavior only uses press and release
func (b *HoldButton) Tapped(*fyne.PointEvent) {
}

func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {
}

func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.holding {
		return
	}
	b.holding = true
	b.Refresh()
	if b.OnHoldStart != nil {
		b.OnHoldStart()
	}
}

func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.releaseHold()
}

func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {
}

// MouseOut cancels an in-progress hold; dragging off the button must not
// complete it
func (b *HoldButton) MouseOut() {
	b.hovered = false
	b.releaseHold()
}

func (b *HoldButton) releaseHold() {
	if !b.holding {
		b.Refresh()
		return
	}
	b.holding = false
	b.Refresh()
	if b.OnHoldEnd != nil {
		b.OnHoldEnd()
	}
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	label := canvas.NewText(b.Text, theme.ForegroundColor())
	label.Alignment = fyne.TextAlignCenter

	return &holdButtonRenderer{
		button: b,
		label:  label,
		bg:     canvas.NewRectangle(theme.ButtonColor()),
		fill:   canvas.NewRectangle(theme.PrimaryColor()),
	}
}

type holdButtonRenderer struct {
	button *HoldButton
	label  *canvas.Text
	bg     *canvas.Rectangle
	fill   *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.label.Resize(size)
	r.layoutFill(size)
}

func (r *holdButtonRenderer) layoutFill(size fyne.Size) {
	width := size.Width * float32(r.button.progress)
	r.fill.Resize(fyne.NewSize(width, size.Height))
	r.fill.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.label.MinSize()
	width := textSize.Width + theme.Padding()*4
	height := textSize.Height + theme.Padding()*2

	// Oversized on purpose: this is the alert's primary control
	if width < 300 {
		width = 300
	}
	if height < 80 {
		height = 80
	}
	return fyne.NewSize(width, height)
}

func (r *holdButtonRenderer) Refresh() {
	r.label.Text = r.button.Text
	r.label.Color = theme.ForegroundColor()

	if r.button.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	r.layoutFill(r.bg.Size())

	r.bg.Refresh()
	r.fill.Refresh()
	r.label.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.fill, r.label}
}

func (r *holdButtonRenderer) Destroy() {
}
