// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func contentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Treat the query as an open.spotify.com URL",
		},
		&cli.StringFlag{
			Name:    "type",
			Aliases: []string{"t"},
			Usage:   "Search type (track, album, playlist, artist, show, episode)",
		},
	}
}

// playCommand starts playback, or resumes it when no query is given
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Aliases:   []string{"p"},
		Usage:     "Play a search result, URI or URL, or resume playback",
		ArgsUsage: "[query...]",
		Flags:     contentFlags(),
		Action:    r.Play,
	}
}

// queueCommand adds to the play queue and lists it
func queueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "queue",
		Aliases:   []string{"q"},
		Usage:     "Queue a search result, URI or URL",
		ArgsUsage: "<query...>",
		Flags:     contentFlags(),
		Action:    r.Queue,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show the current track and upcoming queue",
				Action: r.QueueList,
			},
		},
	}
}

func pauseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "pause",
		Usage:  "Pause playback",
		Action: r.Pause,
	}
}

func skipCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "skip",
		Aliases:   []string{"next"},
		Usage:     "Skip one or more tracks",
		ArgsUsage: "[count]",
		Action:    r.Skip,
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show what is playing",
		Action: r.Status,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search Spotify",
		ArgsUsage: "<query...>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Search type (track, album, playlist, artist, show, episode)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results (defaults to playback.search_limit)",
			},
		},
		Action: r.Search,
	}
}

// deviceCommand handles playback device operations
func deviceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Playback device operations",
		Commands: []*cli.Command{
			{
				Name:      "connect",
				Usage:     "Transfer playback to a device, or the first available one",
				ArgsUsage: "[name...]",
				Action:    r.DeviceConnect,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List available devices",
				Action:  r.DeviceList,
			},
			{
				Name:   "status",
				Usage:  "Show the active device",
				Action: r.DeviceStatus,
			},
		},
	}
}

// setCommand handles playback settings
func setCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Change playback settings",
		Commands: []*cli.Command{
			{
				Name:      "volume",
				Usage:     "Set the volume",
				ArgsUsage: "<1-100>",
				Action:    r.SetVolume,
			},
			{
				Name:      "shuffle",
				Usage:     "Turn shuffle on or off",
				ArgsUsage: "<true|false>",
				Action:    r.SetShuffle,
			},
			{
				Name:      "repeat",
				Usage:     "Set the repeat mode",
				ArgsUsage: "<on|context|track|off>",
				Action:    r.SetRepeat,
			},
		},
	}
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Log in to Spotify and save the token to the config file",
		Action: r.Auth,
	}
}

func botCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bot",
		Usage: "Serve the chat-bot webhook",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to bot.addr)",
			},
		},
		Action: r.Bot,
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Write an example configuration file",
		Action: r.Init,
	}
}
