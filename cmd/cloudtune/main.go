package main

import (
	"os"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
