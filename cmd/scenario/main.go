// Command scenario runs one simulation of bTB spread through a cluster of
// farms and setts and writes its scored result to scenario_<id>.results,
// following CommandLineOptions/NIBtbClusterScenario's startup sequence.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
	"github.com/anthonyohare/NIBtbClusterModel/internal/scenario"
)

var version = "0.1.0"

func syntax() {
	fmt.Fprintf(os.Stderr, `Usage of scenario:
  -c, --config string
    	The name of the scenario config file (required)
  -p, --params string
    	The name of the file containing the parameters for the scenario (required)
  -i, --id string
    	The id given to this scenario (required)
  -l, --level string
    	The logging level for the file log (default "INFO")
`)
}

func main() {
	var configFile, paramsFile, id, level string

	flag.StringVar(&configFile, "config", "", "the name of the scenario config file")
	flag.StringVar(&configFile, "c", "", "the name of the scenario config file")
	flag.StringVar(&paramsFile, "params", "", "the name of the parameters file")
	flag.StringVar(&paramsFile, "p", "", "the name of the parameters file")
	flag.StringVar(&id, "id", "", "the id given to this scenario")
	flag.StringVar(&id, "i", "", "the id given to this scenario")
	flag.StringVar(&level, "level", "INFO", "the logging level for the file log")
	flag.StringVar(&level, "l", "INFO", "the logging level for the file log")
	isVersion := flag.Bool("version", false, "print the version number and exit")
	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if configFile == "" || paramsFile == "" || id == "" {
		syntax()
		os.Exit(1)
	}

	logFile := fmt.Sprintf("scenario_%s.log", id)
	log, err := logging.New(logFile, logging.ParseLevel(level))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()

	log.Infof("scenario %s starting: config=%s params=%s", id, configFile, paramsFile)

	// The scenario RNG is seeded from the wall clock; the controller state
	// file's rngSeed is not read by this command.
	seed := time.Now().UnixNano()
	ctx, err := scenario.Load(log, seed, configFile, paramsFile)
	if err != nil {
		log.Errorf("loading scenario %s: %v", id, err)
		os.Exit(1)
	}

	resultsPath := fmt.Sprintf("scenario_%s.results", id)
	if err := ctx.Run(); err != nil {
		log.Errorf("scenario %s aborted: %v", id, err)
		ctx.Results.Save(resultsPath)
		os.Exit(1)
	}

	ctx.Score()
	log.Infof("scenario %s finished: %s", id, ctx.Results.Summary())
	if err := ctx.Results.Save(resultsPath); err != nil {
		log.Errorf("writing results for scenario %s: %v", id, err)
		os.Exit(1)
	}
}
