// Command sdcd runs the model analyzer as a long-lived service
// (SPEC_FULL.md §B's daemon row: "the analyzer can run as a
// supervised service in a code-generation pipeline"), exposing the
// standard gRPC health-checking protocol so an orchestrator can gate
// traffic on readiness. With -model and -spec given, readiness starts
// NOT_SERVING and flips to SERVING once one full pipeline run over that
// pair finishes without a fatal diagnostic; a failed run leaves it
// NOT_SERVING. Without them, it reports SERVING unconditionally.
//
// Grounded on cmd/lsp/main.go's shape: a small main that wires up
// logging (stderr, no timestamp prefix so it doesn't fight a
// structured format) and hands off to a long-running server loop,
// rather than the CLI's one-shot run-and-exit style of cmd/sdc.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sdforge/sdc/internal/analyzer"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/speccheck"
)

// ServiceName is the health-checking service name readiness is reported
// under (an empty name per the grpc_health_v1 convention would report
// overall server health instead of one specific service).
const ServiceName = "sdc.ModelAnalyzer"

func main() {
	addr := flag.String("addr", ":7771", "listen address")
	modelPath := flag.String("model", "", "path to a parse-tree JSON file, re-checked for readiness at startup")
	specPath := flag.String("spec", "", "path to a spec document JSON file")
	flag.Parse()

	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("sdcd: listen %s: %v", *addr, err)
	}

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)

	if *modelPath != "" && *specPath != "" {
		go checkReadiness(*modelPath, *specPath, healthSrv)
	} else {
		log.Println("sdcd: no -model/-spec given, reporting SERVING unconditionally")
		healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	log.Printf("sdcd: listening on %s", *addr)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("sdcd: serve: %v", err)
	}
}

// checkReadiness runs one full pipeline pass over modelPath/specPath
// and flips the health service to SERVING on success, NOT_SERVING on
// failure. The full pipeline (not just dimension resolution) is run since
// a partial pass would leave the variable table in an unusable state for
// any later RPC this daemon grows to serve.
func checkReadiness(modelPath, specPath string, healthSrv *health.Server) {
	var model parsetree.Model
	if err := readJSON(modelPath, &model); err != nil {
		log.Printf("sdcd: readiness check failed: %v", err)
		return
	}
	var doc speccheck.Document
	if err := readJSON(specPath, &doc); err != nil {
		log.Printf("sdcd: readiness check failed: %v", err)
		return
	}

	a := analyzer.New(config.DefaultOptions())
	ctx := a.Analyze(&model, &doc, nil, "")
	if ctx.Fatal != nil {
		log.Printf("sdcd: readiness check failed: %v", ctx.Fatal)
		healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return
	}

	log.Println("sdcd: readiness check passed, reporting SERVING")
	healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
