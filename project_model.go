// project_model.go - Document model for .intvjam project files: metadata,
// jam sessions (named register snapshots) and songs (frame-grid track events).

package main

import "time"

const PROJECT_FORMAT_VERSION = 1

// Track identifiers: the three tone channels plus the shared noise track.
var trackIDs = [...]string{"A", "B", "C", "N"}

type Metadata struct {
	Name     string `json:"name"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
	Notes    string `json:"notes,omitempty"`
}

// JamSession is a named, annotated register snapshot saved from jam mode.
type JamSession struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Registers map[string]int `json:"registers"`
	Created   string         `json:"created"`
	Updated   string         `json:"updated"`
	Notes     string         `json:"notes,omitempty"`
}

// TrackEvent voices one channel for a span of frames. Nil fields leave the
// corresponding parameter untouched, so an event can change volume without
// re-striking the pitch.
type TrackEvent struct {
	Frame       int   `json:"frame"`
	Duration    int   `json:"duration"`
	Period      *int  `json:"period,omitempty"`
	Volume      *int  `json:"volume,omitempty"`
	NoisePeriod *int  `json:"noise_period,omitempty"`
	Tone        *bool `json:"tone,omitempty"`
	Noise       *bool `json:"noise,omitempty"`
}

// End returns the first frame after the event's span.
func (e TrackEvent) End() int {
	return e.Frame + e.Duration
}

type Song struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	BPM    int                     `json:"bpm"`
	Loop   bool                    `json:"loop"`
	Tracks map[string][]TrackEvent `json:"tracks"`
}

// Frames returns the total length of the song in frames.
func (s *Song) Frames() int {
	last := 0
	for _, events := range s.Tracks {
		for _, ev := range events {
			if ev.End() > last {
				last = ev.End()
			}
		}
	}
	return last
}

type Project struct {
	FormatVersion int          `json:"format_version"`
	Meta          Metadata     `json:"meta"`
	JamSessions   []JamSession `json:"jam_sessions"`
	Songs         []Song       `json:"songs"`
}

func NewProject(name string) *Project {
	now := nowString()
	return &Project{
		FormatVersion: PROJECT_FORMAT_VERSION,
		Meta: Metadata{
			Name:     name,
			Created:  now,
			Modified: now,
		},
	}
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.Meta.Modified = nowString()
}

// Session finds a jam session by id, nil if absent.
func (p *Project) Session(id string) *JamSession {
	for i := range p.JamSessions {
		if p.JamSessions[i].ID == id {
			return &p.JamSessions[i]
		}
	}
	return nil
}

// Song finds a song by id, nil if absent.
func (p *Project) Song(id string) *Song {
	for i := range p.Songs {
		if p.Songs[i].ID == id {
			return &p.Songs[i]
		}
	}
	return nil
}

// normalize applies the permissive-load policy after unmarshalling: register
// maps drop unknown keys and clamp to bytes, track maps drop unknown ids,
// event frames and durations are forced sane. A malformed value never fails
// a project open.
func (p *Project) normalize() {
	if p.FormatVersion == 0 {
		p.FormatVersion = PROJECT_FORMAT_VERSION
	}
	if p.Meta.Created == "" {
		p.Meta.Created = nowString()
	}
	if p.Meta.Modified == "" {
		p.Meta.Modified = p.Meta.Created
	}

	for i := range p.JamSessions {
		rf, _ := RegisterFileFromWire(p.JamSessions[i].Registers, false)
		p.JamSessions[i].Registers = rf.ToWire()
	}

	for i := range p.Songs {
		song := &p.Songs[i]
		if song.BPM <= 0 {
			song.BPM = 120
		}
		cleaned := make(map[string][]TrackEvent, len(trackIDs))
		for _, id := range trackIDs {
			events, ok := song.Tracks[id]
			if !ok {
				continue
			}
			for j := range events {
				if events[j].Frame < 0 {
					events[j].Frame = 0
				}
				if events[j].Duration < 1 {
					events[j].Duration = 1
				}
			}
			cleaned[id] = events
		}
		song.Tracks = cleaned
	}
}

func nowString() string {
	return time.Now().UTC().Format(time.RFC3339)
}
