// Command crftagd serves a trained linear-chain CRF over HTTP and
// websocket for online tagging.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/crfchain/crfcore/config"
	"github.com/crfchain/crfcore/modelio"
	"github.com/crfchain/crfcore/objective"
	"github.com/crfchain/crfcore/server"
	"github.com/crfchain/crfcore/statespace"
	"github.com/crfchain/crfcore/tagger"
)

func main() {
	configPath := flag.String("config", "", "path to a crftagd YAML config file")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "crftagd: -config is required")
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "crftagd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.ServerFromYaml(configPath)
	if err != nil {
		return err
	}

	ssFile, err := os.Open(filepath.Join(cfg.ModelDir, "statespace.yaml"))
	if err != nil {
		return fmt.Errorf("opening statespace declaration: %w", err)
	}
	defer ssFile.Close()

	ss, err := statespace.LoadYAML(ssFile)
	if err != nil {
		return fmt.Errorf("loading statespace: %w", err)
	}

	weightsPath := filepath.Join(cfg.ModelDir, "weights.bin")
	weightsFile, err := os.Open(weightsPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", weightsPath, err)
	}
	defer weightsFile.Close()

	w, err := modelio.Load(weightsFile)
	if err != nil {
		return fmt.Errorf("loading %s: %w", weightsPath, err)
	}

	encoder := objective.NewDenseEncoder(ss, w.NumNodePredicates, w.NumEdgePredicates)
	tg := tagger.New(encoder)
	srv := server.New(cfg.ListenAddr, tg, w.Theta)

	logger := log.New(os.Stdout, "crftagd: ", log.LstdFlags)
	logger.Printf("model loaded from %s (%d node predicates, %d edge predicates)", cfg.ModelDir, w.NumNodePredicates, w.NumEdgePredicates)

	return srv.ListenAndServe()
}
