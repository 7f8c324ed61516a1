package main

import (
	"OnShift/internal/repository"
	"OnShift/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}
