package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/thatdevsherry/suzuki-sdl/cmd/sdlsim/cmd"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, os.Interrupt)
	go func() {
		s := <-quitChan
		log.Printf("got %v, exiting", s)
		cancel()
		<-time.After(15 * time.Second)
		log.Fatal("took too long to shutdown, termination forced")
	}()
	cmd.Execute(ctx)
}
