package main

import (
	"go-skywatch-archive/cmd/skywatch-archive/cmd"
	"go-skywatch-archive/internal/api"
)

func main() {
	// Ensure all API log file buffers are flushed and files closed on exit
	defer api.CloseAllLoggingTransports()

	cmd.Execute()
}
