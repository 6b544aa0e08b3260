package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-arp/arp"
	"go-arp/config"
	"go-arp/debug"
	"go-arp/midi"
	"go-arp/sequencer"
	"go-arp/theme"
	"go-arp/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/go-arp/config.json)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if cfg.Debug.Enabled {
		if err := debug.Enable(cfg.Debug.Path); err != nil {
			return err
		}
		defer debug.Disable()
	}

	// Load theme
	var palette *theme.Palette
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			return err
		}
	}
	th := theme.New(palette)

	g, err := arp.New(cfg.ArpConfig())
	if err != nil {
		return err
	}
	defer midi.CloseDriver()

	in, out, err := openPorts(cfg.MIDI)
	if err != nil {
		return err
	}
	var events <-chan midi.Event
	var names tui.Ports
	if in != nil {
		defer in.Close()
		events = in.Events()
		names.In = in.Name()
	}

	manager := sequencer.NewManager(g, cfg.Controls, nil)
	if out != nil {
		defer out.Close()
		manager.SetOutput(out)
		names.Out = out.Name()
	}
	manager.SetTempo(cfg.Tempo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.Run(ctx, events)
		close(done)
	}()
	// release held notes before the ports close
	defer func() {
		cancel()
		<-done
	}()

	m := tui.NewModel(manager, th, names)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// openPorts opens the configured ports. A port left empty in the config is
// skipped; a named port that cannot be found is an error.
func openPorts(c config.MIDIConfig) (*midi.Input, *midi.Output, error) {
	if c.InPort == "" && c.OutPort == "" {
		return nil, nil, nil
	}
	ports, err := midi.ListPorts(midi.ScanTimeout)
	if err != nil {
		return nil, nil, err
	}

	var in *midi.Input
	if c.InPort != "" {
		port, err := ports.FindIn(c.InPort)
		if err != nil {
			return nil, nil, err
		}
		if in, err = midi.Listen(port); err != nil {
			return nil, nil, err
		}
	}

	var out *midi.Output
	if c.OutPort != "" {
		port, err := ports.FindOut(c.OutPort)
		if err == nil {
			out, err = midi.Open(port, uint8(c.OutChannel-1))
		}
		if err != nil {
			if in != nil {
				in.Close()
			}
			return nil, nil, err
		}
	}
	return in, out, nil
}
