package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RahulNanda1810/todo/internal/auth"
	"github.com/RahulNanda1810/todo/internal/config"
	"github.com/RahulNanda1810/todo/internal/daily"
	"github.com/RahulNanda1810/todo/internal/prefs"
	"github.com/RahulNanda1810/todo/internal/todo"
	"github.com/RahulNanda1810/todo/internal/web"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "todoflow",
		Short:   "Todoflow - backend for the todo web client",
		Version: Version,
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrCreate(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Printf("Connecting to MongoDB at %s", cfg.MongoURI)
			connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
			if err != nil {
				return err
			}
			log.Println("MongoDB connected successfully")
			db := client.Database(cfg.MongoDatabase)

			creds, err := cfg.ServiceAccountJSON()
			if err != nil {
				return err
			}
			verifier, err := auth.NewVerifier(context.Background(), creds)
			if err != nil {
				return err
			}

			store, err := prefs.Open(cfg.PrefsPath)
			if err != nil {
				return err
			}

			todos := todo.NewMongoStore(db)
			templates := daily.NewMongoTemplates(db)
			materializer := daily.NewMaterializer(templates, todos, store)
			accounts := auth.NewAccountClient(cfg.FirebaseAPIKey)

			srv := web.NewServer(todos, materializer, store, verifier, accounts)

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Addr
			}
			log.Printf("Listening on %s", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringP("config", "c", config.DefaultConfigFileName, "Path to config file")
	cmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")

	return cmd
}
