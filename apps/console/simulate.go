package main

import (
	"fmt"

	"github.com/trezcool/classroom/apps/shared"
)

// simulate runs the notification simulator `ticks` times, without waiting between ticks.
func (cli *commandLine) simulate(ticks int, seed int64) error {
	conf := *cli.conf
	if seed != 0 {
		conf.Feed.Seed = seed
	}
	sim, err := shared.NewSimulator(&conf, cli.logger, cli.session)
	if err != nil {
		return err
	}

	var pushed int
	for i := 1; i <= ticks; i++ {
		n, ok := sim.Tick()
		if !ok {
			continue
		}
		pushed++
		fmt.Fprintf(cli.out, "tick %d: [%s] %s - %s\n", i, n.Category, n.Title, n.Message)
	}

	_, unread := cli.session.Notifications()
	fmt.Fprintf(cli.out, "%d of %d ticks pushed a notification; %d unread\n", pushed, ticks, unread)
	return nil
}
