// Command server runs the HTTP API exposing the classifier, refund
// calculator, and trip scoring service.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"

	"google.golang.org/grpc"

	"github.com/Driiva/Driiva/internal/api"
	"github.com/Driiva/Driiva/internal/config"
	driivadb "github.com/Driiva/Driiva/internal/db"
	"github.com/Driiva/Driiva/internal/refund"
	"github.com/Driiva/Driiva/internal/timeutil"
	"github.com/Driiva/Driiva/internal/tripscore"
	"github.com/Driiva/Driiva/internal/tripstore"
	"github.com/Driiva/Driiva/internal/tripstreamrpc"
	"github.com/Driiva/Driiva/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "HTTP listen address")
	grpcListen  = flag.String("grpc-listen", ":8090", "gRPC listen address for ClassifyStream")
	dbPath      = flag.String("db-path", "driiva.db", "path to the sqlite database file")
	configPath  = flag.String("config", "", "path to a JSON tuning config; defaults to the built-in defaults")
	versionFlag = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("server %s (%s, %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	tuning, err := loadTuning(*configPath)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	d, err := driivadb.Open(*dbPath)
	if err != nil {
		log.Fatalf("server: open database: %v", err)
	}
	defer d.Close()

	clock := timeutil.RealClock{}
	srv := api.NewServer(tuning,
		tripstore.NewStore(d, clock),
		refund.NewStore(d, clock),
		tripscore.NewStore(d, clock),
	)

	go runGRPCServer(*grpcListen, tuning)

	log.Printf("server: listening on %s", *listen)
	if err := http.ListenAndServe(*listen, api.LoggingMiddleware(srv.ServeMux())); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func runGRPCServer(addr string, tuning *config.TuningConfig) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("server: grpc listen on %s: %v", addr, err)
	}

	grpcServer := grpc.NewServer()
	tripstreamrpc.Register(grpcServer, tripstreamrpc.NewClassifyServer(tuning.StopGoConfig()))

	log.Printf("server: grpc listening on %s", addr)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("server: grpc serve: %v", err)
	}
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.MustLoadDefaultConfig(), nil
	}
	return config.LoadTuningConfig(path)
}
