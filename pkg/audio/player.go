package audio

import "sync"

// Player tracks the one tone allowed to play at a time. Starting a new tone
// replaces the current one.
type Player struct {
	mu  sync.Mutex
	cur *Tone
}

func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) Start(sound string, volumePercent int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur != nil {
		p.cur.Stop()
		p.cur = nil
	}

	tone, err := StartTone(sound, volumePercent)
	if err != nil {
		return err
	}
	p.cur = tone
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur != nil {
		p.cur.Stop()
		p.cur = nil
	}
}
