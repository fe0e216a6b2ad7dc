package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jgavinray/recorder/internal/audio"
	"github.com/jgavinray/recorder/internal/config"
	"github.com/jgavinray/recorder/internal/logging"
	"github.com/jgavinray/recorder/internal/prompt"
	"github.com/jgavinray/recorder/internal/recorder"
	"github.com/jgavinray/recorder/internal/wav"
)

func main() {
	log := logging.New()

	fmt.Println("Meeting Recorder - capturing microphone and system audio")
	fmt.Println("========================================================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	fmt.Printf("Output directory: %s\n\n", cfg.OutputDirectory)

	manager, err := audio.NewDeviceManager()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audio")
	}
	defer manager.Close()

	fmt.Println("Available input devices:")
	for i := 0; i < manager.Count(); i++ {
		name, _ := manager.Name(i)
		info := ""
		if c, err := manager.Config(i); err == nil {
			info = fmt.Sprintf(" (%d ch, %d Hz)", c.Channels, c.SampleRate)
		}
		fmt.Printf("  %d: %s%s\n", i, name, info)
	}

	fmt.Println("\nSelect microphone device (index):")
	micIdx, err := prompt.ReadIndex(os.Stdin, os.Stdout, manager.Count())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read device selection")
	}
	micName, _ := manager.Name(micIdx)
	fmt.Printf("Selected microphone: %s\n\n", micName)

	fmt.Println("Select system audio device (index, or -1 to skip):")
	sysIdx, haveSys, err := prompt.ReadIndexOptional(os.Stdin, os.Stdout, manager.Count())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read device selection")
	}
	if haveSys && sysIdx == micIdx {
		log.Fatal().Msg("System audio device must differ from the microphone")
	}
	if haveSys {
		name, _ := manager.Name(sysIdx)
		fmt.Printf("Selected system audio: %s\n\n", name)
	} else {
		fmt.Println("System audio recording skipped.")
		fmt.Println()
	}

	micCfg, err := manager.Config(micIdx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read microphone config")
	}
	fmt.Printf("Microphone config: %d channels, %d Hz\n", micCfg.Channels, micCfg.SampleRate)

	var sysCfg audio.StreamConfig
	if haveSys {
		sysCfg, err = manager.Config(sysIdx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read system audio config")
		}
		fmt.Printf("System audio config: %d channels, %d Hz\n", sysCfg.Channels, sysCfg.SampleRate)
	}

	micSrc, err := manager.Take(micIdx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to take microphone device")
	}

	var sysSrc audio.Source
	if haveSys {
		// Taking the microphone shifted the remaining indices down.
		if sysIdx > micIdx {
			sysIdx--
		}
		sysSrc, err = manager.Take(sysIdx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to take system audio device")
		}
	}

	rec := recorder.New(micSrc, micCfg, sysSrc, sysCfg, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nStopping recording...")
		rec.RequestStop()
	}()

	fmt.Println("\n=== Recording Started ===")
	fmt.Println("Press Ctrl+C to stop recording...")
	fmt.Println()

	result, err := rec.Record(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Recording failed")
	}

	if err := wav.Validate(result.Path); err != nil {
		log.Fatal().Err(err).Str("path", result.Path).Msg("Recording failed validation")
	}

	fmt.Println("\n=== Recording Complete ===")
	fmt.Printf("Saved recording: %s\n", result.Path)
	fmt.Printf("File size: %d bytes (%.2f KB)\n", result.Bytes, float64(result.Bytes)/1024.0)
}
