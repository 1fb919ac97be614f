package notification

import (
	"errors"
	"strings"
	"testing"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
)

type recorder struct {
	titles   []string
	messages []string
	beeps    int
	err      error
}

func newTestNotifier(cfg config.NotificationConfig, r *recorder) *Notifier {
	n := New(cfg)
	n.notify = func(title, message string) error {
		r.titles = append(r.titles, title)
		r.messages = append(r.messages, message)
		return r.err
	}
	n.beep = func() error {
		r.beeps++
		return nil
	}
	return n
}

func TestNotifier_Disabled(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(config.NotificationConfig{Enabled: false, Sound: true}, r)

	if n.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
	if err := n.TimerFinished(domain.ModePomodoro, "25:00"); err != nil {
		t.Fatalf("TimerFinished() error = %v", err)
	}
	if len(r.titles) != 0 || r.beeps != 0 {
		t.Error("disabled notifier should not notify or beep")
	}
}

func TestNotifier_TimerFinished(t *testing.T) {
	tests := []struct {
		mode      domain.PomodoroMode
		length    string
		wantTitle string
		wantInMsg string
	}{
		{domain.ModePomodoro, "25:00", "Pomodoro Complete", "25:00 pomodoro"},
		{domain.ModeShortBreak, "05:00", "Break Over", "05:00 Short Break"},
		{domain.ModeLongBreak, "15:00", "Break Over", "15:00 Long Break"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := &recorder{}
			n := newTestNotifier(config.NotificationConfig{Enabled: true}, r)

			if err := n.TimerFinished(tt.mode, tt.length); err != nil {
				t.Fatalf("TimerFinished() error = %v", err)
			}
			if len(r.titles) != 1 {
				t.Fatalf("sent %d notifications, want 1", len(r.titles))
			}
			if !strings.Contains(r.titles[0], tt.wantTitle) {
				t.Errorf("title = %q, want it to contain %q", r.titles[0], tt.wantTitle)
			}
			if !strings.Contains(r.messages[0], tt.wantInMsg) {
				t.Errorf("message = %q, want it to contain %q", r.messages[0], tt.wantInMsg)
			}
			if r.beeps != 0 {
				t.Error("should not beep with sound off")
			}
		})
	}
}

func TestNotifier_Sound(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(config.NotificationConfig{Enabled: true, Sound: true}, r)

	if err := n.TimerFinished(domain.ModePomodoro, "25:00"); err != nil {
		t.Fatalf("TimerFinished() error = %v", err)
	}
	if r.beeps != 1 {
		t.Errorf("beeps = %d, want 1", r.beeps)
	}
}

func TestNotifier_Error(t *testing.T) {
	boom := errors.New("no notification daemon")
	r := &recorder{err: boom}
	n := newTestNotifier(config.NotificationConfig{Enabled: true, Sound: true}, r)

	err := n.TimerFinished(domain.ModePomodoro, "25:00")
	if !errors.Is(err, boom) {
		t.Errorf("TimerFinished() error = %v, want %v", err, boom)
	}
	if r.beeps != 0 {
		t.Error("should not beep after a failed notification")
	}
}
