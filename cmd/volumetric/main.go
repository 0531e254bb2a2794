package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/lukaszgryglicki/volumetric/internal/volumetric"
)

func main() {
	volumetric.Debug = os.Getenv("DEBUG") != ""
	volumetric.PNG = os.Getenv("SKIP_PNG") == ""
	volumetric.GIF = os.Getenv("GIF") != ""
	volumetric.RAW = os.Getenv("RAW") != ""
	volumetric.UseDSM = os.Getenv("NO_DSM") == ""
	if n, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && n > 0 {
		volumetric.Workers = n
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	console := &volumetric.ConsoleProgress{}
	volumetric.Reporter = console
	if addr := os.Getenv("PROGRESS_ADDR"); addr != "" {
		hub := volumetric.NewProgressHub()
		defer hub.Close()
		mux := http.NewServeMux()
		mux.Handle("/progress", hub)
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				fmt.Printf("Progress server: %v\n", err)
			}
		}()
		fmt.Printf("Progress feed on ws://%s/progress\n", addr)
		volumetric.Reporter = volumetric.Tee(console, hub)
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := volumetric.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
