// Command driver is a thin ensemble launcher: each iteration it runs
// cmd/controller once to (re)generate the parameter vector, then spawns
// numScenarios copies of cmd/scenario concurrently, bounded the way
// starter/main.go bounds its iGenDec worker subprocesses. It does not touch
// the data model, the kernel, or the Metropolis math (SPEC_FULL.md
// "ADDITIONAL COMPONENT: cmd/driver").
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/remeh/sizedwaitgroup"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
)

var version = "0.1.0"

func syntax() {
	fmt.Fprintf(os.Stderr, `Usage of driver:
  -c, --config string
    	The name of the controller config file (required)
  -p, --params string
    	The scenario config file each spawned scenario reads (required)
  -n, --iterations int
    	Number of controller/ensemble iterations to run (default 1)
  -l, --level string
    	The logging level for the file log (default "INFO")
`)
}

func runController(configFile, level string) error {
	cmd := exec.Command("controller", "-c", configFile, "-l", level)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	return cmd.Run()
}

func spawnScenario(swg *sizedwaitgroup.SizedWaitGroup, scenarioConfig, paramsFile, level string, id int, errs chan<- error) {
	defer swg.Done()
	cmd := exec.Command("scenario",
		"-c", scenarioConfig,
		"-p", paramsFile,
		"-i", strconv.Itoa(id),
		"-l", level)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	errs <- cmd.Run()
}

func runEnsemble(cfg *config.ControllerConfig, scenarioConfig, level string) {
	swg := sizedwaitgroup.New(runtime.NumCPU())
	errCh := make(chan error, cfg.NumScenarios)
	for id := 0; id < cfg.NumScenarios; id++ {
		swg.Add()
		go spawnScenario(&swg, scenarioConfig, cfg.ParametersFile, level, id, errCh)
	}
	swg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			fmt.Fprintln(os.Stderr, "scenario process failed:", err)
		}
	}
}

func main() {
	var controllerConfig, scenarioConfig, level string
	var iterations int

	flag.StringVar(&controllerConfig, "config", "", "the controller config file")
	flag.StringVar(&controllerConfig, "c", "", "the controller config file")
	flag.StringVar(&scenarioConfig, "params", "", "the scenario config file each scenario reads")
	flag.StringVar(&scenarioConfig, "p", "", "the scenario config file each scenario reads")
	flag.IntVar(&iterations, "iterations", 1, "number of controller/ensemble iterations")
	flag.IntVar(&iterations, "n", 1, "number of controller/ensemble iterations")
	flag.StringVar(&level, "level", "INFO", "the logging level for the file log")
	flag.StringVar(&level, "l", "INFO", "the logging level for the file log")
	isVersion := flag.Bool("version", false, "print the version number and exit")
	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if controllerConfig == "" || scenarioConfig == "" {
		syntax()
		os.Exit(1)
	}

	log, err := logging.New("driver.log", logging.ParseLevel(level))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()

	for i := 0; i < iterations; i++ {
		start := time.Now()
		log.Infof("driver: iteration %d/%d, running controller", i+1, iterations)
		if err := runController(controllerConfig, level); err != nil {
			log.Errorf("controller run failed on iteration %d: %v", i+1, err)
			os.Exit(1)
		}

		cfg, err := config.LoadControllerConfig(controllerConfig)
		if err != nil {
			log.Errorf("reloading controller config: %v", err)
			os.Exit(1)
		}

		log.Infof("driver: iteration %d/%d, spawning %d scenarios", i+1, iterations, cfg.NumScenarios)
		runEnsemble(cfg, scenarioConfig, level)
		log.Infof("driver: iteration %d/%d finished in %s", i+1, iterations, time.Since(start))
	}
}
