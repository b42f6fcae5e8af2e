package main

import (
	"flag"
	"log"
	"math/rand"
	"strings"

	"github.com/spf13/viper"

	"github.com/ihaqi/bdtoolkit"
)

// This code effectively only reads the scenario file and propagates the model.

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "simulation scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	// Read simulation parameters
	start := viper.GetFloat64("sim.start")
	end := viper.GetFloat64("sim.end")
	step := viper.GetFloat64("sim.step")
	if step == 0 {
		step = bdtoolkit.StepSize
	}
	if verbose {
		log.Printf("[conf] time span: [%f, %f], step: %f\n", start, end, step)
	}

	// Read export configuration
	conf := bdtoolkit.ExportConfig{
		Filename:  viper.GetString("export.filename"),
		AsCSV:     viper.GetBool("export.csv"),
		Panels:    viper.GetBool("export.panels"),
		Timestamp: viper.GetBool("export.timestamp"),
	}
	if conf.Filename == "" {
		conf.Filename = scenario
	}

	// Read model
	var rng *rand.Rand
	if viper.IsSet("model.seed") {
		rng = rand.New(rand.NewSource(viper.GetInt64("model.seed")))
	}
	n := viper.GetInt("model.neurons")
	kind := viper.GetString("model.kind")
	switch kind {
	case "hopfield":
		var net *bdtoolkit.HopfieldNet
		if wPath := viper.GetString("model.weights"); wPath != "" {
			b := viper.GetFloat64("model.slope")
			tau := viper.GetFloat64("model.tau")
			loaded, ok, err := bdtoolkit.NewHopfieldNetFromFiles(wPath, viper.GetString("model.current"), b, tau, rng)
			if err != nil {
				log.Fatalf("could not load model: %s", err)
			}
			if !ok {
				log.Println("no model selected, nothing to do")
				return
			}
			net = loaded
		} else {
			if n == 0 {
				log.Fatal("model.neurons not set and no weight file provided")
			}
			net = bdtoolkit.NewRandomHopfieldNet(n, rng)
		}
		v0 := make([]float64, net.Size())
		if conf.Panels {
			if err := bdtoolkit.WritePanelCatalog(conf.Filename, conf, net.System(v0)); err != nil {
				log.Fatalf("could not write panel catalog: %s", err)
			}
		}
		sim := bdtoolkit.NewPreciseSimulation(net, v0, start, end, step, conf)
		sim.Propagate()
	case "delaynet":
		if n == 0 {
			log.Fatal("model.neurons not set")
		}
		net := bdtoolkit.NewRandomDelayNet(n, rng)
		// The fixed-step delay driver needs the step to fit under the
		// smallest nonzero lag.
		for _, lag := range net.Lags() {
			if lag > 0 && lag < step {
				step = lag
			}
		}
		if verbose {
			log.Printf("[conf] delay step: %f\n", step)
		}
		if conf.Panels {
			if err := bdtoolkit.WritePanelCatalog(conf.Filename, conf, net.System()); err != nil {
				log.Fatalf("could not write panel catalog: %s", err)
			}
		}
		sim := bdtoolkit.NewDelaySimulation(net, start, end, step, conf)
		sim.Propagate()
	default:
		log.Fatalf("unknown model kind `%s`", kind)
	}
}
