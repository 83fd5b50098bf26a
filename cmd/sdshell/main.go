//go:build linux

// Command sdshell is a tiny host-side demonstrator: it brings up a card
// over a Linux SPI device, mounts its FAT32 volume, and offers an
// interactive cd/ls/cat loop over stdin. It wires hostspi, hostuart,
// sdspi, fat32 and diag together; it contains no protocol logic of its own.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"periph.io/x/conn/v3/physic"

	"github.com/jsfain/sdcard/diag"
	"github.com/jsfain/sdcard/fat32"
	"github.com/jsfain/sdcard/hostspi"
	"github.com/jsfain/sdcard/hostuart"
	"github.com/jsfain/sdcard/sdspi"
)

func main() {
	os.Exit(submain())
}

func submain() int {
	log.SetFlags(log.Lmsgprefix | log.Ltime)
	log.SetPrefix("sdshell: ")

	spiDev := flag.String("spi", "/dev/spidev0.0", "SPI device node")
	csPin := flag.String("cs", "GPIO8", "chip-select GPIO name")
	clockHz := flag.Int("hz", 4_000_000, "SPI clock rate")
	traceUART := flag.String("trace-uart", "", "optional serial device to mirror diagnostics to")
	debug := flag.Bool("d", false, "enable slog debug tracing to stderr")
	flag.Parse()

	var logger *slog.Logger
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	bus, err := hostspi.Open(*spiDev, *csPin, physic.Frequency(*clockHz)*physic.Hertz)
	if err != nil {
		log.Printf("opening spi bus: %v", err)
		return 2
	}
	defer bus.Close()

	var sink *diag.Sink
	if *traceUART != "" {
		uart, err := hostuart.Open(*traceUART, 115200)
		if err != nil {
			log.Printf("opening trace uart: %v", err)
			return 2
		}
		defer uart.Close()
		sink = diag.NewSink(uart, logger)
	}

	cfg := sdspi.DefaultCardConfig()
	info, err := sdspi.Init(bus, cfg)
	if err != nil {
		if ie, ok := err.(sdspi.InitError); ok && sink != nil {
			sink.PrintInitError(ie)
		}
		log.Printf("card init: %v", err)
		return 2
	}
	card := sdspi.NewCard(bus, info, cfg.Limits)

	geo, err := fat32.LoadGeometry(card)
	if err != nil {
		log.Printf("loading fat32 geometry: %v", err)
		return 2
	}
	cur := fat32.RootCursor(geo)

	fmt.Println("sdshell ready. commands: cd <dir>, ls, cat <file>, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", cur.LongName)
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "cd":
			if len(fields) != 2 {
				fmt.Println("usage: cd <dir>")
				continue
			}
			next, res, err := fat32.CD(card, geo, cur, fields[1])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if !res.Ok() {
				fmt.Println(res)
				continue
			}
			cur = next
		case "ls":
			if res, err := fat32.List(card, geo, cur, fat32.ListLongName, os.Stdout); err != nil {
				fmt.Println("error:", err)
			} else if !res.Ok() {
				fmt.Println(res)
			}
		case "cat":
			if len(fields) != 2 {
				fmt.Println("usage: cat <file>")
				continue
			}
			if res, err := fat32.ReadFile(card, geo, cur, fields[1], os.Stdout); err != nil {
				fmt.Println("error:", err)
			} else if !res.Ok() {
				fmt.Println(res)
			}
		case "quit", "exit":
			return 0
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
	return 0
}
