// Command controller runs one fitting iteration of the adaptive Metropolis
// controller (§4.7): aggregate the last ensemble's results, decide
// accept/reject, update the running mean/covariance, and propose the next
// parameter vector for the next ensemble of scenario runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/controller"
	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
)

var version = "0.1.0"

func syntax() {
	fmt.Fprintf(os.Stderr, `Usage of controller:
  -c, --config string
    	The name of the controller config file (required)
  -l, --level string
    	The logging level for the file log (default "INFO")

  -p, --params and -i, --id are accepted for CLI-surface parity with
  scenario and driver but are not used by controller: the parameters file
  path comes from the config file, and controller runs once per ensemble.
`)
}

func main() {
	var configFile, paramsFile, id, level string

	flag.StringVar(&configFile, "config", "", "the name of the controller config file")
	flag.StringVar(&configFile, "c", "", "the name of the controller config file")
	flag.StringVar(&paramsFile, "params", "", "unused, accepted for CLI parity")
	flag.StringVar(&paramsFile, "p", "", "unused, accepted for CLI parity")
	flag.StringVar(&id, "id", "", "unused, accepted for CLI parity")
	flag.StringVar(&id, "i", "", "unused, accepted for CLI parity")
	flag.StringVar(&level, "level", "INFO", "the logging level for the file log")
	flag.StringVar(&level, "l", "INFO", "the logging level for the file log")
	isVersion := flag.Bool("version", false, "print the version number and exit")
	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if configFile == "" {
		syntax()
		os.Exit(1)
	}

	log, err := logging.New("NIBtbClusterController.log", logging.ParseLevel(level))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()

	log.Infof("controller starting: config=%s", configFile)

	cfg, err := config.LoadControllerConfig(configFile)
	if err != nil {
		log.Errorf("loading controller config %s: %v", configFile, err)
		os.Exit(1)
	}

	if err := controller.Run(log, cfg); err != nil {
		log.Errorf("controller step failed: %v", err)
		os.Exit(1)
	}
}
