// Command village generates a walled village layout from a seed and
// prints it as WKT, opens it in a viewer, or both.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"village/internal/export"
	"village/internal/logger"
	"village/internal/metrics"
	"village/internal/viewer"
	"village/internal/village"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	if err := run(l, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		l.Error("village_error", "err", err)
		os.Exit(1)
	}
}

// run does all the work so deferred metrics output and server shutdown
// happen before main exits, on failures too.
func run(l *slog.Logger, args []string, stdout, stderr io.Writer) error {
	seed := envUint("VILLAGE_SEED", uint64(time.Now().UnixNano()))
	patches := envInt("VILLAGE_PATCHES", village.DefaultPatchCount)

	fs := flag.NewFlagSet("village", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Uint64Var(&seed, "seed", seed, "generation seed (env VILLAGE_SEED)")
	fs.IntVar(&patches, "patches", patches, "number of walled wards (env VILLAGE_PATCHES)")
	tries := fs.Int("tries", 1, "seeds to try, counting up from -seed, before giving up")
	wkt := fs.Bool("wkt", false, "print the layout as a WKT geometry collection")
	layers := fs.Bool("layers", false, "print one WKT line per layer instead of a single collection")
	view := fs.Bool("view", false, "open the layout in a window")
	dump := fs.Bool("metrics", false, "dump generation metrics to stderr on exit")
	addr := fs.String("metrics-addr", "", "serve /metrics on this address until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*wkt && !*layers && !*view {
		*wkt = true
	}

	if *dump {
		defer func() {
			if err := metrics.Write(stderr); err != nil {
				l.Error("metrics_write_error", "err", err)
			}
		}()
	}

	if *addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			l.Info("metrics_listen", "addr", *addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics_listen_error", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	v, err := generate(l, seed, patches, *tries)
	if err != nil {
		return fmt.Errorf("generate seed %d: %w", seed, err)
	}

	if err := output(stdout, v, *wkt, *layers); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if *view {
		if err := viewer.Run(v, l); err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
	} else if *addr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-ctx.Done()
	}
	return nil
}

// generate builds a village, moving to the next seed on a generation
// failure until tries runs out.
func generate(l *slog.Logger, seed uint64, patches, tries int) (*village.Village, error) {
	var err error
	for i := 0; i < max(tries, 1); i++ {
		start := time.Now()
		var v *village.Village
		v, err = village.Build(village.Config{Seed: seed + uint64(i), PatchCount: patches, Logger: l})
		metrics.Observe(v, err, time.Since(start))
		if err == nil {
			l.Info("village_built", "seed", v.Seed(), "gates", len(v.Gates()), "arteries", len(v.Arteries()),
				"took_ms", time.Since(start).Milliseconds())
			return v, nil
		}
		if !errors.Is(err, village.ErrGenerationFailure) {
			return nil, err
		}
	}
	return nil, err
}

func output(w io.Writer, v *village.Village, wkt, layers bool) error {
	if layers {
		ls, err := export.Layers(v)
		if err != nil {
			return err
		}
		for _, layer := range ls {
			fmt.Fprintf(w, "%s\t%s\n", layer.Name, layer.WKT())
		}
		return nil
	}
	if !wkt {
		return nil
	}
	s, err := export.WKT(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func envUint(key string, def uint64) uint64 {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
