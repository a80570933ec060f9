package commands

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/crumpstrr33/gridcal/internal/calendar"
	"github.com/crumpstrr33/gridcal/internal/tui"
)

// Tui handles the tui subcommand: an interactive terminal month view
func Tui(args []string) {
	today := calendar.DateOf(time.Now())

	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	year := fs.Int("year", today.Year, "Year to open")
	month := fs.Int("month", int(today.Month), "Month to open (0 = January .. 11 = December)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gridcal tui [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Opens the month grid in the terminal. Navigate with h/l (months),\n")
		fmt.Fprintf(os.Stderr, "H/L (years), t (today); q quits.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	start, err := calendar.NewYearMonth(calendar.Month(*month), *year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(start, today); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
