package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kashkoool/nizargold-sub000/config"
	"github.com/kashkoool/nizargold-sub000/internal/adminapi"
	"github.com/kashkoool/nizargold-sub000/internal/app"
	"github.com/kashkoool/nizargold-sub000/internal/storeapi"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/nizargold.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables")
)

var version = "dev"

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter()
	storeapi.InitRouter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Listen()
	})
	g.Go(func() error {
		application.StartBackgroundJobs(ctx)
		<-ctx.Done()
		return webserver.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
