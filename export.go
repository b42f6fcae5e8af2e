package bdtoolkit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	OutputDir string // resolved against the toolkit config when empty
	AsCSV     bool
	Panels    bool // also write the display panel catalog
	Timestamp bool
}

// IsUseless returns whether this configuration will output anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

func (c ExportConfig) outputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return bdConfig().outputDir
}

// createCSVFile returns a file which requires a defer close statement!
func createCSVFile(conf ExportConfig) *os.File {
	var filename string
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/traj-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", conf.outputDir(), conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/traj-%s.csv", conf.outputDir(), conf.Filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	return f
}

// StreamStates streams the output of the channel to a trajectory CSV file.
// The file is created on the first received state so that an immediately
// cancelled propagation leaves nothing behind.
func StreamStates(conf ExportConfig, stateChan <-chan (State)) {
	var f *os.File
	var w *csv.Writer
	for state := range stateChan {
		if f == nil {
			f = createCSVFile(conf)
			defer f.Close()
			w = csv.NewWriter(f)
			header := make([]string, len(state.V)+1)
			header[0] = "time"
			for i := range state.V {
				header[i+1] = fmt.Sprintf("V%d", i)
			}
			w.Write(header)
		}
		record := make([]string, len(state.V)+1)
		record[0] = strconv.FormatFloat(state.T, 'f', -1, 64)
		for i, v := range state.V {
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		w.Write(record)
	}
	if w != nil {
		w.Flush()
	}
}

// PanelCatalog definition. It describes the display panels the host GUI
// should open for a set of systems; purely configuration data.
type PanelCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Panels  []*Display `json:"panels"`
}

func (c *PanelCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// WritePanelCatalog writes the panel catalog of the provided systems next to
// the trajectory output. Systems without display metadata are skipped.
func WritePanelCatalog(name string, conf ExportConfig, systems ...*System) error {
	panels := []*Display{}
	for _, sys := range systems {
		if sys.Display != nil {
			panels = append(panels, sys.Display)
		}
	}
	c := PanelCatalog{Version: "1.0", Name: name, Panels: panels}
	f, err := os.Create(fmt.Sprintf("%s/catalog-%s.json", conf.outputDir(), name))
	if err != nil {
		return err
	}
	defer f.Close()
	marsh, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = f.Write(marsh)
	return err
}
