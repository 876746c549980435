// dump.go - Styled terminal views of register maps and project contents.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dumpStyles struct {
	heading lipgloss.Style
	regName lipgloss.Style
	value   lipgloss.Style
	detail  lipgloss.Style
	muted   lipgloss.Style
}

func newDumpStyles() dumpStyles {
	return dumpStyles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		regName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		value:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}

// DumpRegisters renders the 16-register map with a decoded meaning per slot.
func DumpRegisters(rf RegisterFile) string {
	st := newDumpStyles()
	var b strings.Builder

	b.WriteString(st.heading.Render("AY-3-8914 registers"))
	b.WriteByte('\n')

	for i, name := range registerNames {
		line := fmt.Sprintf("%-4s %s  %s",
			st.regName.Render(name),
			st.value.Render(fmt.Sprintf("0x%02X", rf[i])),
			st.detail.Render(describeRegister(&rf, i)))
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func describeRegister(rf *RegisterFile, idx int) string {
	switch idx {
	case REG_A_FINE, REG_B_FINE, REG_C_FINE:
		ch := idx / 2
		period := rf.Period(ch)
		return fmt.Sprintf("ch %c period %d (%.1f Hz)", 'A'+ch, period, PeriodToFrequency(period))
	case REG_A_COARSE, REG_B_COARSE, REG_C_COARSE:
		return fmt.Sprintf("ch %c period coarse", 'A'+idx/2)
	case REG_NOISE:
		return fmt.Sprintf("noise period %d", rf.NoisePeriod())
	case REG_MIXER:
		return describeMixer(rf)
	case REG_A_VOL, REG_B_VOL, REG_C_VOL:
		ch := idx - REG_A_VOL
		vb := rf.VolumeByte(ch)
		desc := fmt.Sprintf("ch %c volume %d", 'A'+ch, vb&0x0F)
		if vb&VOLUME_ENV_BIT != 0 {
			desc += " (envelope)"
		}
		return desc
	case REG_ENV_FINE:
		return fmt.Sprintf("envelope period %d", rf.EnvelopePeriod())
	case REG_ENV_COARSE:
		return "envelope period high"
	case REG_ENV_SHAPE:
		return fmt.Sprintf("envelope shape %d", rf.EnvelopeShape())
	default:
		return "unused"
	}
}

func describeMixer(rf *RegisterFile) string {
	var on []string
	for ch := 0; ch < NUM_CHANNELS; ch++ {
		if rf.ToneEnabled(ch) {
			on = append(on, fmt.Sprintf("%c-tone", 'A'+ch))
		}
		if rf.NoiseEnabled(ch) {
			on = append(on, fmt.Sprintf("%c-noise", 'A'+ch))
		}
	}
	if len(on) == 0 {
		return "mixer: all off"
	}
	return "mixer: " + strings.Join(on, " ")
}

// ListProject renders the project's sessions and songs.
func ListProject(p *Project) string {
	st := newDumpStyles()
	var b strings.Builder

	b.WriteString(st.heading.Render(fmt.Sprintf("project %q", p.Meta.Name)))
	b.WriteString(st.muted.Render(fmt.Sprintf("  (modified %s)", p.Meta.Modified)))
	b.WriteByte('\n')

	b.WriteString(st.heading.Render("jam sessions"))
	b.WriteByte('\n')
	if len(p.JamSessions) == 0 {
		b.WriteString(st.muted.Render("  none"))
		b.WriteByte('\n')
	}
	for _, s := range p.JamSessions {
		b.WriteString(fmt.Sprintf("  %s %s\n", st.regName.Render(s.ID), st.value.Render(s.Name)))
	}

	b.WriteString(st.heading.Render("songs"))
	b.WriteByte('\n')
	if len(p.Songs) == 0 {
		b.WriteString(st.muted.Render("  none"))
		b.WriteByte('\n')
	}
	for i := range p.Songs {
		s := &p.Songs[i]
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			st.regName.Render(s.ID),
			st.value.Render(s.Name),
			st.muted.Render(fmt.Sprintf("(%d frames, loop=%v)", s.Frames(), s.Loop))))
	}
	return b.String()
}
