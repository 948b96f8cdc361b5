/*
Command subdexplay is a small interactive driver for the substring
index, used for manual exercising during development. It is developer
tooling, not a shipped interface: a CLI/server/IPC surface is explicitly
out of scope for this module (see SPEC_FULL.md's Non-goals).

# Usage

Build a model over one record per line of a text file and query it
interactively:

	subdexplay -file words.txt

Enable verbose construction/query logging:

	subdexplay -file words.txt -d

Type ":cache" at the prompt to list currently cached queries, or ":stats"
for index diagnostics.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/halfmoonlabs/substrix/internal/logger"
	"github.com/halfmoonlabs/substrix/internal/textutil"
	"github.com/halfmoonlabs/substrix/pkg/config"
	"github.com/halfmoonlabs/substrix/pkg/model"
)

const version = "0.1.0"

func main() {
	filePath := flag.String("file", "", "text file with one record per line")
	configPath := flag.String("config", "", "path to config.toml (default: ~/.config/substrix/config.toml)")
	debug := flag.Bool("d", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	noFilter := flag.Bool("no-filter", false, "skip pathological-input filtering before querying")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *filePath == "" {
		log.Fatal("missing -file")
	}

	path := *configPath
	if path == "" {
		path = filepath.Join(config.GetConfigDir(), "config.toml")
	}
	cfg, err := config.InitConfig(path)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	records, err := loadRecords(*filePath)
	if err != nil {
		log.Fatalf("loading records: %v", err)
	}

	m, err := model.Build(records, model.WithConfig(cfg))
	if err != nil {
		log.Fatalf("building index: %v", err)
	}
	log.Infof("indexed %d records", len(records))

	replLog := logger.New("subdexplay")
	if *debug {
		replLog.SetLevel(log.DebugLevel)
	} else {
		replLog.SetLevel(log.WarnLevel)
	}

	runREPL(m, replLog, *noFilter)
}

func loadRecords(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []model.Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, model.Record{model.TextKey: line})
	}
	return records, scanner.Err()
}

func runREPL(m *model.Model, log *log.Logger, noFilter bool) {
	fmt.Println("subdexplay - type a query and press Enter (Ctrl+C to exit)")
	reader := bufio.NewReader(os.Stdin)
	highlight := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		queryText := strings.TrimSpace(line)
		switch {
		case queryText == "":
			continue
		case queryText == ":stats":
			printStats(m)
			continue
		case queryText == ":cache":
			printCache(m)
			continue
		}

		if !noFilter && !textutil.IsValidInput(queryText) {
			log.Debug("query filtered out", "query", queryText)
			continue
		}

		log.Debugf("dispatching query %q", queryText)
		results := m.Match(queryText)
		if len(results) == 0 {
			fmt.Println("no matches")
			continue
		}
		for _, r := range results {
			text, _ := r.Text()
			fmt.Println(highlightSubstring(text, queryText, highlight))
		}
	}
}

func highlightSubstring(text, queryText string, style lipgloss.Style) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(queryText))
	if idx == -1 {
		return text
	}
	return text[:idx] + style.Render(text[idx:idx+len(queryText)]) + text[idx+len(queryText):]
}

func printStats(m *model.Model) {
	for k, v := range m.Stats() {
		fmt.Printf("%s: %d\n", k, v)
	}
}

func printCache(m *model.Model) {
	for _, k := range m.CachedQueries() {
		fmt.Println(k)
	}
}

func printVersion() {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	fmt.Println(style.Render("subdexplay " + version))
}
