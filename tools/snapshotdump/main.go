package main

import (
	"bufio"
	"cognitive-intel/internal/infrastructure/storage"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	asJSON := len(os.Args) > 2 && os.Args[2] == "-json"

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Cannot open snapshot: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	snap, err := storage.ReadSnapshot(bufio.NewReader(f))
	if err != nil {
		fmt.Printf("Invalid snapshot: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Printf("Encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Snapshot %s\n", snap.ID)
	fmt.Printf("  seed: %d  tick: %d  saved: %s\n", snap.Seed, snap.Tick, time.Unix(snap.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("  records: %d\n\n", len(snap.Entries))
	fmt.Printf("%-22s %-7s %-11s %-14s %s\n", "ENTITY", "PLAYER", "POLICY", "COVERAGE", "FLOOR")
	for _, e := range snap.Entries {
		fmt.Printf("%-22s %-7s %-11s %-14s %s\n", e.Entity.Wire(), e.Player, e.State.Policy, e.State.Coverage, e.State.Floor)
	}
}

func printHelp() {
	fmt.Println(`Snapshot Dump - просмотр сохранения разведданных (.cdis)
Usage:
  snapshotdump <file.cdis>         - таблица записей
  snapshotdump <file.cdis> -json   - записи в JSON`)
}
