// Package console renders pipeline progress on a terminal.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Ensure Reporter implements the interface.
var _ driven.StepReporter = (*Reporter)(nil)

// TimeLayout is the timestamp format of every step line.
const TimeLayout = "2006-01-02 15:04:05"

// agentWidth pads agent names so messages line up.
const agentWidth = 16

// Theme is the palette used for agent lines.
type Theme struct {
	Step    lipgloss.Color
	Service lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Notice  lipgloss.Color
	Banner  lipgloss.Color
	Event   lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() Theme {
	return Theme{
		Step:    lipgloss.Color("#06B6D4"), // Cyan
		Service: lipgloss.Color("#C084FC"), // Magenta
		Success: lipgloss.Color("#A6E3A1"), // Green
		Error:   lipgloss.Color("#F38BA8"), // Red
		Notice:  lipgloss.Color("#F9E2AF"), // Yellow
		Banner:  lipgloss.Color("#89B4FA"), // Blue
		Event:   lipgloss.Color("#CDD6F4"), // Light gray
	}
}

// Reporter writes timestamped agent lines.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time

	theme Theme
	color bool

	step    lipgloss.Style
	fail    lipgloss.Style
	success lipgloss.Style
	notice  lipgloss.Style
	banner  lipgloss.Style
	event   lipgloss.Style

	// agentStyles overrides the step style for specific agents.
	agentStyles map[string]lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithColor turns styling on or off.
func WithColor(enabled bool) Option {
	return func(r *Reporter) { r.color = enabled }
}

// WithTheme replaces the palette.
func WithTheme(theme Theme) Option {
	return func(r *Reporter) { r.theme = theme }
}

// New creates a reporter writing to out. Colour is on by default.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:   out,
		now:   time.Now,
		theme: DefaultTheme(),
		color: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.buildStyles()
	return r
}

func (r *Reporter) buildStyles() {
	renderer := lipgloss.NewRenderer(r.out)
	if r.color {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	styled := func(c lipgloss.Color) lipgloss.Style {
		return renderer.NewStyle().Bold(r.color).Foreground(c)
	}

	r.step = styled(r.theme.Step)
	r.fail = styled(r.theme.Error)
	r.success = styled(r.theme.Success)
	r.notice = styled(r.theme.Notice)
	r.banner = styled(r.theme.Banner)
	r.event = styled(r.theme.Event)
	r.agentStyles = map[string]lipgloss.Style{
		"LLM Service":  styled(r.theme.Service),
		"Orchestrator": r.banner,
	}
}

// Step writes a progress line for agent.
func (r *Reporter) Step(agent, message string) {
	style, ok := r.agentStyles[agent]
	if !ok {
		style = r.step
	}
	r.line(style, agent, message)
}

// Fail writes an error line for agent.
func (r *Reporter) Fail(agent, message string) {
	r.line(r.fail, agent, message)
}

// Event dumps the event as indented JSON under title.
func (r *Reporter) Event(title string, ev *domain.Event) {
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("<unencodable event: %v>", err))
	}
	r.write(renderLines(r.event, title+":\n"+string(data)) + "\n\n")
}

// Banner writes a heading line surrounded by blank lines.
func (r *Reporter) Banner(text string) {
	r.write("\n" + r.banner.Render(text) + "\n\n")
}

// Section writes a success-coloured separator line.
func (r *Reporter) Section(text string) {
	r.write("\n" + r.success.Render(text) + "\n")
}

// Notice writes a highlighted line without timestamp.
func (r *Reporter) Notice(text string) {
	r.write(r.notice.Render(text) + "\n")
}

// FormatLine renders an agent line without styling.
func FormatLine(at time.Time, agent, message string) string {
	return fmt.Sprintf("[%s] [%-*s] %s", at.Format(TimeLayout), agentWidth, strings.ToUpper(agent), message)
}

func (r *Reporter) line(style lipgloss.Style, agent, message string) {
	r.write(style.Render(FormatLine(r.now(), agent, message)) + "\n")
}

func (r *Reporter) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.out, s)
}

// renderLines styles each line on its own so lines keep their width.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}
