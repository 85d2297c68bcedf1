package viz

// Player is a read-only cursor over the frames of a finished run.
type Player struct {
	frames int
	cursor int
	paused bool
	loop   bool
}

// NewPlayer panics if frames < 1.
func NewPlayer(frames int, loop bool) *Player {
	if frames < 1 {
		panic("viz: player needs at least one frame")
	}
	return &Player{frames: frames, loop: loop}
}

func (p *Player) Index() int   { return p.cursor }
func (p *Player) Frames() int  { return p.frames }
func (p *Player) Paused() bool { return p.paused }
func (p *Player) Toggle()      { p.paused = !p.paused }
func (p *Player) Restart()     { p.cursor = 0 }

// Done reports a non-looping player parked on its last frame.
func (p *Player) Done() bool {
	return !p.loop && p.cursor == p.frames-1
}

// Advance moves n frames forward unless paused. Looping players wrap to
// the first frame after the last; others stop there.
func (p *Player) Advance(n int) {
	if p.paused {
		return
	}
	p.move(n)
}

// Seek moves n frames (negative for backwards) even while paused, clamped
// to the run.
func (p *Player) Seek(n int) {
	p.cursor = max(0, min(p.cursor+n, p.frames-1))
}

func (p *Player) move(n int) {
	next := p.cursor + n
	switch {
	case next < p.frames:
		p.cursor = next
	case p.loop && p.cursor == p.frames-1:
		p.cursor = 0
	default:
		p.cursor = p.frames - 1
	}
}

// Progress is the cursor position in [0, 1].
func (p *Player) Progress() float64 {
	if p.frames == 1 {
		return 1
	}
	return float64(p.cursor) / float64(p.frames-1)
}
