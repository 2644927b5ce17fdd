package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tubedl/tubedl/api"
	"github.com/tubedl/tubedl/config"
	"github.com/tubedl/tubedl/engine"
	"github.com/tubedl/tubedl/notifier"
	"github.com/tubedl/tubedl/processor"
	"github.com/tubedl/tubedl/progress"
	"github.com/tubedl/tubedl/storage"

	"github.com/go-redis/redis"
	"github.com/urfave/cli"
)

var (
	sigCh = make(chan os.Signal, 1)
	cfg   config.Config
)

func main() {
	app := cli.NewApp()
	app.Name = "tubedl"
	app.Usage = "Media download service with live progress polling"
	app.HideVersion = true

	app.Commands = cli.Commands{
		cli.Command{
			Name:  "server",
			Usage: "Start the web server",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "host",
					Usage: "`HOST` to listen on",
					Value: "0.0.0.0",
				},
				cli.IntFlag{
					Name:  "port, p",
					Usage: "`PORT` to listen on",
					Value: 8000,
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "`FILE` to load config from",
					Value: "config.json",
				},
			},
			Action: func(c *cli.Context) error {
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

				logger := log.New(os.Stderr, "[server] ", log.Ldate|log.Ltime)

				state := progress.NewState()
				eng := engine.NewYTDLP(
					time.Duration(cfg.Engine.ProgressInterval) * time.Millisecond)

				proc, err := processor.New(eng, state, cfg,
					log.New(os.Stderr, "[processor] ", log.Ldate|log.Ltime))
				if err != nil {
					return err
				}

				var store *storage.Storage
				if cfg.Redis.Addr != "" {
					store, err = storage.New(redisClient("tubedl", cfg.Redis.Addr))
					if err != nil {
						return err
					}
					proc.Storage = store
				}

				ctx, cancel := context.WithCancel(context.Background())

				var notif *notifier.Notifier
				if cfg.Notifier.Destination != "" {
					notif, err = notifier.New(cfg.Notifier.Backend,
						cfg.Notifier.Destination, cfg.Notifier.Options)
					if err != nil {
						cancel()
						return err
					}
					if err := notif.Start(ctx); err != nil {
						cancel()
						return err
					}
					proc.Notifier = notif
				}

				go proc.Start(ctx)

				a := api.New(proc, state, store,
					c.String("host"), c.Int("port"), cfg.API.HeartbeatPath, logger)

				go func() {
					logger.Println(fmt.Sprintf("Listening on %s...", a.Server.Addr))
					err := a.Server.ListenAndServe()
					if err != nil && err != http.ErrServerClosed {
						logger.Fatal(err)
					}
				}()

				<-sigCh
				logger.Println("Shutting down gracefully...")
				cancel()
				err = a.Server.Shutdown(context.TODO())
				if err != nil {
					return err
				}
				if notif != nil {
					if err := notif.Stop(); err != nil {
						logger.Println("Error stopping notifier:", err)
					}
				}
				logger.Println("Bye!")
				return nil
			},
			Before: parseConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// parseConfig extracts configuration from the provided config file
func parseConfig(c *cli.Context) error {
	var err error
	cfg, err = config.Parse(c.String("config"))
	return err
}

func redisClient(name, addr string) *redis.Client {
	setName := func(c *redis.Conn) error {
		ok, err := c.ClientSetName(name).Result()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("Error setting Redis client name to " + name)
		}
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, OnConnect: setName})
}
