package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox"
	"github.com/oomph-ac/leapvox/event"
	"github.com/oomph-ac/leapvox/input"
	"github.com/oomph-ac/leapvox/player"
	"github.com/oomph-ac/leapvox/settings"
	"github.com/oomph-ac/leapvox/stream"
	"github.com/oomph-ac/leapvox/worker"
	"github.com/oomph-ac/leapvox/world"
	"github.com/sirupsen/logrus"
)

// The following program walks a scripted hand through a generated voxel world, highlighting and
// grabbing the blocks it aims at.
func main() {
	configPath := flag.String("config", "leapvox.toml", "path to the settings file (.toml or .yaml)")
	fps := flag.Int("fps", leapvox.DefaultFPS, "ticks per second")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(*configPath); err != nil {
			log.Fatalf("unable to save default settings: %v", err)
		}
		log.Infof("created default settings at %s", *configPath)
	}
	s, err := settings.Load(*configPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	if lvl, err := logrus.ParseLevel(s.Log.Level); err == nil {
		log.Level = lvl
	} else {
		log.Warnf("unknown log level %q, using info", s.Log.Level)
	}

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         s.Sentry.DSN,
			Environment: s.Sentry.Environment,
		}); err != nil {
			log.Fatalf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if s.Debug.StatsView {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Debug.StatsAddr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	gen, err := s.WorldGenerator()
	if err != nil {
		log.Fatalf("unable to create world generator: %v", err)
	}
	w := world.New(gen, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	spawn := mgl32.Vec3{6, 1, 6}
	pool := worker.New(0)
	w.Pregenerate(pool, cube.PosFromVec3(spawn), s.World.PregenRadius)
	pool.Close()

	p, err := player.New(log, w, input.NewScriptedDevice(sweep), player.Opts{
		Position:    spawn,
		Yaw:         -45,
		Pitch:       20,
		Highlight:   s.HighlightOpts(),
		Input:       s.InputOpts(),
		ChunkRadius: s.World.ChunkRadius,
	})
	if err != nil {
		log.Fatalf("unable to create player: %v", err)
	}
	defer p.Close()
	if log.Level >= logrus.DebugLevel {
		p.Debugger = player.Debugger{LogHighlight: true, LogInput: true}
	}

	loop := leapvox.NewLoop(log, p, *fps)

	if s.Debug.RecordPath != "" {
		rec, err := event.CreateRecorder(s.Debug.RecordPath)
		if err != nil {
			log.Fatalf("unable to start recording: %v", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Errorf("unable to finish recording: %v", err)
			}
		}()
		p.Subscribe(rec)
		loop.OnTick(rec.RecordTick)
		log.Infof("recording highlight events to %s", s.Debug.RecordPath)
	}

	if s.Debug.StreamAddr != "" {
		srv := stream.NewServer(log, 0)
		p.Subscribe(srv)

		mux := http.NewServeMux()
		mux.Handle("/ws", srv.Handler())
		httpSrv := &http.Server{Addr: s.Debug.StreamAddr, Handler: mux}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("stream server: %v", err)
			}
		}()
		defer func() {
			srv.Close()
			_ = httpSrv.Close()
		}()
		log.Infof("streaming highlight events on ws://%s/ws", s.Debug.StreamAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := loop.Run(ctx); err != nil {
		log.Errorf("tick loop: %v", err)
	}
}

// sweep moves a hand slowly around the interaction box, closing it into a fist now and then and
// drawing a circle every few seconds.
func sweep(id uint64) input.Frame {
	const (
		box    = float32(200)
		period = 600
	)
	phase := float32(id%period) / period * 2 * math32.Pi

	f := input.Frame{
		ID:             id,
		Valid:          true,
		InteractionBox: input.InteractionBox{Width: box, Height: box, Depth: box},
		Hands: []input.Hand{{
			ID:           1,
			PalmPosition: mgl32.Vec3{math32.Cos(phase) * box * 0.6, box * (1 + 0.5*math32.Sin(phase)), -box * 0.05},
			PalmNormal:   mgl32.Vec3{0, -1, 0},
			Direction:    mgl32.Vec3{0, 0, -1},
		}},
	}

	fingers := 5
	if id%period > period-60 {
		fingers = 0
	}
	for i := 0; i < fingers; i++ {
		finger := input.Pointable{ID: 10 + i, HandID: 1, TipPosition: f.Hands[0].PalmPosition, Length: 50}
		f.Fingers = append(f.Fingers, finger)
		f.Pointables = append(f.Pointables, finger)
	}

	switch t := id % (period / 2); {
	case t >= 100 && t < 160:
		state := input.GestureUpdate
		if t == 159 {
			state = input.GestureStop
		}
		f.Gestures = append(f.Gestures, input.Gesture{ID: int(id / (period / 2)), Type: input.GestureCircle, State: state, HandIDs: []int{1}})
	case t == 200:
		f.Gestures = append(f.Gestures, input.Gesture{ID: int(id), Type: input.GestureKeyTap, State: input.GestureStop, HandIDs: []int{1}})
	}
	return f
}
