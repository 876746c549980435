// main.go - intvjam command line entry point.
//
// intvjam edits and previews AY-3-8914 (Intellivision PSG) music. It loads
// .intvjam project files, plays jam sessions and frame-sequenced songs
// through a live audio backend, and renders either to WAV offline.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
)

var (
	projectPath = flag.String("project", "", "path to .intvjam project file")
	listFlag    = flag.Bool("list", false, "list the project's sessions and songs")
	dumpID      = flag.String("dump", "", "print a jam session's register map")
	jamID       = flag.String("jam", "", "play a jam session live (empty project plays the default state)")
	songID      = flag.String("song", "", "play a song through the sequencer")
	exportPath  = flag.String("export", "", "render to a 16-bit WAV file instead of playing")
	backendName = flag.String("backend", "auto", "audio backend: auto, oto, portaudio or null")
	sampleRate  = flag.Int("sample-rate", SAMPLE_RATE, "output sample rate in Hz")
	duration    = flag.Duration("duration", 5*time.Second, "playback/export duration")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Error(err)
		fmt.Fprintln(os.Stderr, "intvjam:", err)
		os.Exit(1)
	}
}

func run() error {
	var project *Project
	if *projectPath != "" {
		var err error
		project, err = LoadProject(*projectPath)
		if err != nil {
			return err
		}
	}

	switch {
	case *listFlag:
		if project == nil {
			return fmt.Errorf("-list needs -project")
		}
		fmt.Print(ListProject(project))
		return nil

	case *dumpID != "":
		state, err := stateForSession(project, *dumpID)
		if err != nil {
			return err
		}
		fmt.Print(DumpRegisters(state.ToRegisters()))
		return nil

	case *exportPath != "":
		return exportWAV(project)

	case *songID != "":
		if project == nil {
			return fmt.Errorf("-song needs -project")
		}
		song := project.Song(*songID)
		if song == nil {
			return fmt.Errorf("no song %q in project", *songID)
		}
		return playSong(song)

	default:
		state, err := stateForSession(project, *jamID)
		if err != nil {
			return err
		}
		return playLive(state, *duration)
	}
}

// stateForSession builds a chip state from a named jam session, or the
// default state when no session is requested.
func stateForSession(project *Project, id string) (*ChipState, error) {
	if id == "" {
		return NewChipState(), nil
	}
	if project == nil {
		return nil, fmt.Errorf("session %q needs -project", id)
	}
	session := project.Session(id)
	if session == nil {
		return nil, fmt.Errorf("no jam session %q in project", id)
	}
	rf, _ := RegisterFileFromWire(session.Registers, false)
	return ChipStateFromRegisters(rf), nil
}

func openOutput() (AudioOutput, error) {
	backend, err := AudioBackendFromName(*backendName)
	if err != nil {
		return nil, err
	}
	return NewAudioOutput(backend, *sampleRate)
}

func playLive(state *ChipState, d time.Duration) error {
	output, err := openOutput()
	if err != nil {
		return err
	}
	defer output.Close()

	stream := NewLiveStream(state, output, *sampleRate)
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	defer stream.Stop()

	glog.Infof("playing for %s", d)
	time.Sleep(d)
	return nil
}

func playSong(song *Song) error {
	output, err := openOutput()
	if err != nil {
		return err
	}
	defer output.Close()

	state := NewChipState()
	state.MuteAll()

	stream := NewLiveStream(state, output, *sampleRate)
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	defer stream.Stop()

	seq := NewSequencer(state)
	seq.Play(song)
	defer seq.Stop()

	// Looping songs run until the duration elapses; finite songs may end
	// sooner on their own.
	deadline := time.Now().Add(*duration)
	for seq.IsPlaying() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

// exportWAV renders a session or song offline and writes a mono 16-bit WAV.
func exportWAV(project *Project) error {
	var samples []float32

	if *songID != "" {
		if project == nil {
			return fmt.Errorf("-song needs -project")
		}
		song := project.Song(*songID)
		if song == nil {
			return fmt.Errorf("no song %q in project", *songID)
		}
		samples = renderSong(song, *sampleRate)
	} else {
		state, err := stateForSession(project, *jamID)
		if err != nil {
			return err
		}
		n := int(duration.Seconds() * float64(*sampleRate))
		synth := NewSynthesizer(*sampleRate)
		samples = synth.Render(n, state.Snapshot())
	}

	if err := WriteWAV(*exportPath, samples, *sampleRate); err != nil {
		return err
	}
	glog.Infof("wrote %d samples to %s", len(samples), *exportPath)
	fmt.Printf("wrote %s (%d samples)\n", *exportPath, len(samples))
	return nil
}

// renderSong steps the sequencer frame by frame and renders each frame's
// worth of samples, producing the same audio the live path would.
func renderSong(song *Song, rate int) []float32 {
	state := NewChipState()
	state.MuteAll()
	seq := NewSequencer(state)
	synth := NewSynthesizer(rate)

	frames := song.Frames()
	perFrame := rate / FRAME_RATE
	out := make([]float32, 0, frames*perFrame)
	chunk := make([]float32, perFrame)

	for f := 0; f < frames; f++ {
		seq.ApplyFrame(song, f)
		synth.RenderInto(chunk, state.Snapshot())
		out = append(out, chunk...)
	}
	return out
}
