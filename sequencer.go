// sequencer.go - 60 FPS frame sequencer. Plays a song by applying its track
// events to the live chip state once per frame; the audio stream keeps
// rendering from the same state and picks the changes up on its next
// snapshot.

package main

import (
	"sync"
	"time"

	"github.com/golang/glog"
)

type Sequencer struct {
	state *ChipState

	mutex   sync.Mutex
	playing bool
	stop    chan struct{}
	done    chan struct{}
	muted   map[string]bool
	solo    string
}

func NewSequencer(state *ChipState) *Sequencer {
	return &Sequencer{
		state: state,
		muted: make(map[string]bool),
	}
}

// SetTrackMuted mutes or unmutes one track for subsequent frames.
func (q *Sequencer) SetTrackMuted(id string, muted bool) {
	q.mutex.Lock()
	q.muted[id] = muted
	q.mutex.Unlock()
}

// SetSolo restricts playback to a single track; empty clears solo.
func (q *Sequencer) SetSolo(id string) {
	q.mutex.Lock()
	q.solo = id
	q.mutex.Unlock()
}

func (q *Sequencer) trackAudible(id string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.solo != "" && id != q.solo {
		return false
	}
	return !q.muted[id]
}

// Play starts song playback on its own goroutine, ticking at FRAME_RATE.
// A second Play while running is a no-op.
func (q *Sequencer) Play(song *Song) {
	q.mutex.Lock()
	if q.playing {
		q.mutex.Unlock()
		return
	}
	q.playing = true
	q.stop = make(chan struct{})
	q.done = make(chan struct{})
	// Local copies: Stop nils the fields after closing, the goroutine must
	// keep selecting on the channel it was started with.
	stop := q.stop
	done := q.done
	q.mutex.Unlock()

	glog.Infof("sequencer playing %q: %d frames, loop=%v", song.Name, song.Frames(), song.Loop)

	go func() {
		defer func() {
			q.state.MuteAll()
			q.mutex.Lock()
			q.playing = false
			q.mutex.Unlock()
			close(done)
		}()

		total := song.Frames()
		if total == 0 {
			return
		}

		ticker := time.NewTicker(time.Second / FRAME_RATE)
		defer ticker.Stop()

		frame := 0
		for {
			q.ApplyFrame(song, frame)
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			frame++
			if frame >= total {
				if !song.Loop {
					return
				}
				frame = 0
			}
		}
	}()
}

// Stop ends playback and silences all channels. Idempotent.
func (q *Sequencer) Stop() {
	q.mutex.Lock()
	if !q.playing || q.stop == nil {
		q.mutex.Unlock()
		return
	}
	close(q.stop)
	q.stop = nil
	done := q.done
	q.mutex.Unlock()
	<-done
}

func (q *Sequencer) IsPlaying() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.playing
}

// ApplyFrame applies every track's state for one frame to the chip state. A
// tone channel with no covering event (or a muted track) is silenced for the
// frame; the noise track leaves the noise period alone between events.
func (q *Sequencer) ApplyFrame(song *Song, frame int) {
	for ch, id := range [NUM_CHANNELS]string{"A", "B", "C"} {
		ev := activeEvent(song.Tracks[id], frame)
		if ev == nil || !q.trackAudible(id) {
			q.state.MuteChannel(ch)
			continue
		}
		q.applyChannelEvent(ch, ev)
	}

	if q.trackAudible("N") {
		if ev := activeEvent(song.Tracks["N"], frame); ev != nil && ev.NoisePeriod != nil {
			q.state.SetNoisePeriod(*ev.NoisePeriod)
		}
	}
}

func (q *Sequencer) applyChannelEvent(ch int, ev *TrackEvent) {
	if ev.Period != nil {
		q.state.SetPeriod(ch, *ev.Period)
	}
	if ev.Volume != nil {
		q.state.SetVolume(ch, *ev.Volume)
	}
	if ev.Tone != nil {
		q.state.SetToneEnabled(ch, *ev.Tone)
	}
	if ev.Noise != nil {
		q.state.SetNoiseEnabled(ch, *ev.Noise)
	}
	if ev.NoisePeriod != nil {
		q.state.SetNoisePeriod(*ev.NoisePeriod)
	}
}

// activeEvent returns the event whose span covers frame; the last matching
// event wins when spans overlap.
func activeEvent(events []TrackEvent, frame int) *TrackEvent {
	var match *TrackEvent
	for i := range events {
		if events[i].Frame <= frame && frame < events[i].End() {
			match = &events[i]
		}
	}
	return match
}
