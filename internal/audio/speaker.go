package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/litescript/ls-orrery/internal/logging"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Output owns the speaker. Until Init succeeds every tone rejects playback.
type Output struct {
	mu     sync.Mutex
	ready  bool
	volume float64
	log    *logging.Logger
}

// NewOutput creates an output with linear volume in [0,1].
func NewOutput(volume float64, log *logging.Logger) *Output {
	if log == nil {
		log = logging.Discard()
	}
	return &Output{volume: math.Min(math.Max(volume, 0), 1), log: log}
}

// Init opens the speaker. Calling it again after success is a no-op.
// On failure the output stays silent.
func (o *Output) Init() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		o.log.Warn("speaker unavailable, running silent: %v", err)
		return fmt.Errorf("init speaker: %w", err)
	}
	o.ready = true
	return nil
}

// Ready reports whether the speaker is open.
func (o *Output) Ready() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ready
}

// Close silences everything queued on the speaker and releases the device.
// Tones reject playback afterwards until Init is called again.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	o.ready = false
}

// Tone renders a decaying bell tone at freq Hz lasting d.
func (o *Output) Tone(freq float64, d time.Duration) *Tone {
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(sampleRate.N(d), newBell(freq, d)))
	return &Tone{out: o, buf: buf}
}

func (o *Output) gain(s beep.Streamer) beep.Streamer {
	if o.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(o.volume)}
}

// Tone is a pre-rendered cue. Each Play starts a fresh streamer from the
// start of the buffer; Stop detaches it so the speaker drops it.
type Tone struct {
	out  *Output
	buf  *beep.Buffer
	ctrl *beep.Ctrl

	gen     atomic.Uint64
	playing atomic.Bool
}

var (
	_ Resource = (*Tone)(nil)
	_ Primer   = (*Tone)(nil)
)

// Play starts the tone from the beginning.
func (t *Tone) Play() error {
	if !t.out.Ready() {
		return fmt.Errorf("%w: speaker not initialized", ErrPlaybackRejected)
	}
	t.Stop()

	gen := t.gen.Add(1)
	done := beep.Callback(func() {
		// Runs on the speaker goroutine.
		if t.gen.Load() == gen {
			t.playing.Store(false)
		}
	})
	t.ctrl = &beep.Ctrl{Streamer: beep.Seq(t.out.gain(t.buf.Streamer(0, t.buf.Len())), done)}
	t.playing.Store(true)
	speaker.Play(t.ctrl)
	return nil
}

// Prime hands the speaker a muted copy of the tone and detaches it at once,
// so the stream path is warmed up without anything reaching the device.
// The tone's own playback state is untouched.
func (t *Tone) Prime() error {
	if !t.out.Ready() {
		return fmt.Errorf("%w: speaker not initialized", ErrPlaybackRejected)
	}
	ctrl := &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: t.buf.Streamer(0, t.buf.Len()),
		Base:     2,
		Silent:   true,
	}}
	speaker.Play(ctrl)
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
	return nil
}

// Stop halts the tone. The next Play restarts from the beginning.
func (t *Tone) Stop() {
	t.gen.Add(1)
	t.playing.Store(false)
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Streamer = nil
	speaker.Unlock()
	t.ctrl = nil
}

// Playing reports whether the tone is still streaming.
func (t *Tone) Playing() bool {
	return t.playing.Load()
}

// Duration returns the rendered length.
func (t *Tone) Duration() time.Duration {
	return sampleRate.D(t.buf.Len())
}

// bell is a sine with one overtone and an exponential decay.
type bell struct {
	freq  float64
	decay float64
	pos   int
}

func newBell(freq float64, d time.Duration) *bell {
	secs := d.Seconds()
	if secs <= 0 {
		secs = 1
	}
	return &bell{freq: freq, decay: 5 / secs}
}

func (b *bell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(b.pos) / float64(sampleRate)

		attack := math.Min(t/0.01, 1)
		env := attack * math.Exp(-t*b.decay)
		v := 0.6*math.Sin(2*math.Pi*b.freq*t) + 0.2*math.Sin(2*math.Pi*b.freq*2*t)
		v *= 0.4 * env

		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bell) Err() error {
	return nil
}
