package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-arp/arp"
	"go-arp/config"
	"go-arp/midi"
	"go-arp/sequencer"
	"go-arp/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "run":
		err = runOffline(os.Args[2:])
	case "send":
		err = sendTo(os.Args[2:])
	case "monitor":
		err = monitor(os.Args[2:])
	default:
		usage()
	}
	midi.CloseDriver()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                  - List all MIDI ports")
	fmt.Println("  run [ticks] [seed]    - Generate without MIDI and print the notes")
	fmt.Println("  send <port> [ticks]   - Play the arpeggiator into an output port")
	fmt.Println("  monitor <port>        - Print decoded events from an input port")
}

func listPorts() error {
	fmt.Println("(waiting up to 3 seconds...)")
	ports, err := midi.ListPorts(midi.ScanTimeout)
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}

	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ports.InNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range ports.OutNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	return nil
}

func intArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	return strconv.Atoi(args[i])
}

// runOffline ticks a generator from the saved config and prints each note.
func runOffline(args []string) error {
	ticks, err := intArg(args, 0, 64)
	if err != nil {
		return fmt.Errorf("ticks: %w", err)
	}
	seed, err := intArg(args, 1, 1)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	acfg := cfg.ArpConfig()
	acfg.Seed = uint64(seed)
	g, err := arp.New(acfg)
	if err != nil {
		return err
	}
	g.Play()

	for i := 0; i < ticks; i++ {
		g.Advance()
		n := g.Generate()
		fmt.Printf("%3d  step %2d  %-4s vel %3d\n", i, g.Position(), widgets.NoteName(n.Pitch), sequencer.Velocity(n.Velocity))
	}
	if f := g.SamplerFallbacks(); f > 0 {
		fmt.Printf("sampler fallbacks: %d\n", f)
	}
	return nil
}

// sendTo drives the full runtime against one output port
func sendTo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("send needs a port name")
	}
	ticks, err := intArg(args, 1, 32)
	if err != nil {
		return fmt.Errorf("ticks: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ports, err := midi.ListPorts(midi.ScanTimeout)
	if err != nil {
		return err
	}
	port, err := ports.FindOut(args[0])
	if err != nil {
		return err
	}
	out, err := midi.Open(port, uint8(cfg.MIDI.OutChannel-1))
	if err != nil {
		return err
	}
	defer out.Close()

	g, err := arp.New(cfg.ArpConfig())
	if err != nil {
		return err
	}
	mgr := sequencer.NewManager(g, cfg.Controls, out)
	mgr.SetTempo(cfg.Tempo)
	mgr.Play()

	fmt.Printf("Sending %d steps to %s at %d bpm...\n", ticks, out.Name(), mgr.Tempo())
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(ticks)*mgr.StepDuration())
	defer cancel()
	mgr.Run(ctx, nil)

	s := mgr.State()
	fmt.Println(widgets.RenderNotes(s.Recent))
	return nil
}

func monitor(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("monitor needs a port name")
	}
	ports, err := midi.ListPorts(midi.ScanTimeout)
	if err != nil {
		return err
	}
	port, err := ports.FindIn(args[0])
	if err != nil {
		return err
	}
	in, err := midi.Listen(port)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Listening on %s (ctrl+c to stop)\n", in.Name())
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-in.Events():
			if !ok {
				return nil
			}
			switch e.Type {
			case midi.NoteOn:
				fmt.Printf("ch%-2d note on  %-4s vel %d\n", e.Channel+1, widgets.NoteName(int(e.Note)), e.Velocity)
			case midi.NoteOff:
				fmt.Printf("ch%-2d note off %-4s\n", e.Channel+1, widgets.NoteName(int(e.Note)))
			case midi.CC:
				fmt.Printf("ch%-2d cc %3d = %d\n", e.Channel+1, e.Note, e.Velocity)
			}
		}
	}
}
