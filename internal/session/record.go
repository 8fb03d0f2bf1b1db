package session

import (
	"github.com/diegok/blobvolley/internal/protocol"
)

// Record steps the session up to ticks times, writing one record per tick,
// and stops after the tick a side wins. It returns the number of ticks played.
func (s *Session) Record(enc *protocol.Codec, ticks int) (int, error) {
	for i := 0; i < ticks; i++ {
		tr := s.Step()

		left, right := s.match.Scores()
		rec := protocol.TickRecord{
			Tick:       s.frame - 1,
			LeftScore:  left,
			RightScore: right,
			Ball:       s.match.BallPosition(),
		}
		if len(s.events) > 0 {
			rec.Events = append([]protocol.FrameEvent(nil), s.events...)
		}
		if err := enc.Encode(&rec); err != nil {
			return i, err
		}

		if tr.Kind == WinTransition {
			return i + 1, nil
		}
	}
	return ticks, nil
}
