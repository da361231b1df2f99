// Package server exposes the core pipeline to the external dashboard layer
// as a JSON-RPC tool server over stdio. The core stays pure: the server only
// wires parameters in and structured results out.
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"bbrisk/internal/config"
)

// JSONRPCRequest represents a standard JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state for the tool server.
type Server struct {
	cfg *config.AppConfig
}

// NewServer creates a new tool server.
func NewServer(cfg *config.AppConfig) *Server {
	return &Server{cfg: cfg}
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "bbrisk",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "generate_activity_dataset",
				"description": "Generate the labeled daily-activity dataset (one row per user-day) and write it as CSV. A fixed seed reproduces the dataset exactly.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"out":  map[string]interface{}{"type": "string", "description": "Output CSV path (defaults to the configured dataset path)"},
						"days": map[string]interface{}{"type": "integer", "description": "Simulation horizon in working days"},
						"seed": map[string]interface{}{"type": "integer", "description": "Random seed for the generator"},
					},
				},
			},
			map[string]interface{}{
				"name":        "estimate_incident_rates",
				"description": "Compute the empirical annual insider-incident probability per role (and per role x region) from a generated dataset.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"dataset": map[string]interface{}{"type": "string", "description": "Dataset CSV path (defaults to the configured dataset path)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "run_loss_simulation",
				"description": "Run the Monte Carlo loss simulation: per-role incident rates and headcounts in, company-wide annual-loss statistics and a baseline-vs-mitigated comparison out. Deterministic per invocation.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"mitigation_weight": map[string]interface{}{"type": "number", "description": "Fractional reduction of attack success probability, 0.0 to 1.0"},
						"trials":            map[string]interface{}{"type": "integer", "description": "Monte Carlo trial count (default 10000)"},
						"dataset":           map[string]interface{}{"type": "string", "description": "Dataset CSV path to estimate incident rates from"},
					},
					"required": []string{"mitigation_weight"},
				},
			},
		},
	}
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "generate_activity_dataset":
		data, err = s.handleGenerate(call.Arguments)
	case "estimate_incident_rates":
		data, err = s.handleRates(call.Arguments)
	case "run_loss_simulation":
		data, err = s.handleSimulate(call.Arguments)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
