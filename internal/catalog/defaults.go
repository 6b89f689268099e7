package catalog

// Default returns the built-in homelab table.
func Default() *Catalog {
	return &Catalog{
		Stacks: []Stack{
			{Name: "core", File: "docker-compose.yml", Description: "Media server, wiki, LLM runner, reverse proxy"},
			{Name: "monitoring", File: "docker-compose.monitoring.yml", Optional: true, Description: "Prometheus, Grafana, exporters"},
			{Name: "blockchain", File: "docker-compose.blockchain.yml", Optional: true, Description: "Ethereum execution and consensus clients"},
			{Name: "base", File: "docker-compose.base.yml", Optional: true, Description: "Base L2 node and wallet API"},
			{Name: "superchain", File: "docker-compose.superchain.yml", Optional: true, Description: "OP Stack rollup node"},
			{Name: "web3", File: "docker-compose.web3.yml", Optional: true, Description: "IPFS and web3 tooling"},
			{Name: "quantum", File: "docker-compose.quantum.yml", Optional: true, Description: "Quantum random number service"},
			{Name: "agents", File: "docker-compose.agents.yml", Optional: true, Description: "Agent and AI orchestrators, event store"},
			{Name: "creative", File: "docker-compose.creative.yml", Optional: true, Description: "Music, speech, video and 3D generation"},
			{Name: "security", File: "docker-compose.security.yml", Optional: true, Description: "LLM red-teaming and firmware/signal analysis"},
		},
		Services: []Service{
			// core
			{Name: "caddy", Stack: "core", Port: 443, Path: "/", Method: MethodTLS},
			{Name: "jellyfin", Stack: "core", Port: 8096, Path: "/health", Method: MethodGET},
			{Name: "wikijs", Stack: "core", Port: 3000, Path: "/healthz", Method: MethodGET},
			{Name: "ollama", Stack: "core", Port: 11434, Path: "/api/tags", Method: MethodGET},
			{Name: "open-webui", Stack: "core", Port: 3080, Path: "/health", Method: MethodGET},
			{Name: "portainer", Stack: "core", Port: 9443, Path: "/api/system/status", Method: MethodTLS},
			{Name: "log-aggregator", Stack: "core", Port: 5500, Path: "/health", Method: MethodGET},
			{Name: "backup-manager", Stack: "core", Port: 5501, Path: "/health", Method: MethodGET},
			{Name: "notification-hub", Stack: "core", Port: 5502, Path: "/health", Method: MethodGET},
			{Name: "dashboard", Stack: "core", Port: 5300, Path: "/health", Method: MethodGET},
			{Name: "webhook-handler", Stack: "core", Port: 5400, Path: "/health", Method: MethodGET},

			// monitoring
			{Name: "prometheus", Stack: "monitoring", Port: 9090, Path: "/-/healthy", Method: MethodGET},
			{Name: "grafana", Stack: "monitoring", Port: 3001, Path: "/api/health", Method: MethodGET},
			{Name: "node-exporter", Stack: "monitoring", Port: 9100, Path: "/metrics", Method: MethodGET},
			{Name: "cadvisor", Stack: "monitoring", Port: 8081, Path: "/healthz", Method: MethodGET},
			{Name: "uptime-kuma", Stack: "monitoring", Port: 3002, Path: "/", Method: MethodGET},

			// blockchain
			{Name: "geth", Stack: "blockchain", Port: 8545, Method: MethodJSONRPC},
			{Name: "lighthouse", Stack: "blockchain", Port: 5052, Path: "/eth/v1/node/health", Method: MethodGET},
			{Name: "bitcoind", Stack: "blockchain", Port: 8332, Method: MethodJSONRPC, RPCMethod: "getblockcount"},

			// base
			{Name: "base-node", Stack: "base", Port: 7545, Method: MethodJSONRPC},
			{Name: "base-wallet", Stack: "base", Port: 5005, Path: "/health", Method: MethodGET, ComposeName: "base-wallet-cli"},

			// superchain
			{Name: "op-geth", Stack: "superchain", Port: 9545, Method: MethodJSONRPC},
			{Name: "op-node", Stack: "superchain", Port: 9547, Method: MethodJSONRPC, RPCMethod: "optimism_syncStatus"},

			// web3
			{Name: "ipfs", Stack: "web3", Port: 5001, Path: "/api/v0/version", Method: MethodGET},
			{Name: "ipfs-gateway", Stack: "web3", Port: 8080, Path: "/ipfs/", Method: MethodGET, ComposeName: "ipfs"},

			// quantum
			{Name: "quantum-rng", Stack: "quantum", Port: 5010, Path: "/health", Method: MethodGET},

			// agents
			{Name: "agent-orchestrator", Stack: "agents", Port: 5004, Path: "/health", Method: MethodGET},
			{Name: "message-bus", Stack: "agents", Port: 5100, Path: "/health", Method: MethodGET},
			{Name: "event-store", Stack: "agents", Port: 5101, Path: "/health", Method: MethodGET},
			{Name: "ai-orchestrator", Stack: "agents", Port: 5200, Path: "/health", Method: MethodGET},

			// creative
			{Name: "trellis-3d", Stack: "creative", Port: 5003, Path: "/health", Method: MethodGET},
			{Name: "musicgen", Stack: "creative", Port: 5011, Path: "/health", Method: MethodGET},
			{Name: "bark-tts", Stack: "creative", Port: 5012, Path: "/health", Method: MethodGET},
			{Name: "video-diffusion", Stack: "creative", Port: 5013, Path: "/health", Method: MethodGET},

			// security
			{Name: "garak", Stack: "security", Port: 5600, Path: "/health", Method: MethodGET},
			{Name: "firmware-analyzer", Stack: "security", Port: 5602, Path: "/health", Method: MethodGET},
			{Name: "signal-classifier", Stack: "security", Port: 5604, Path: "/health", Method: MethodGET},
			{Name: "security-dashboard", Stack: "security", Port: 5610, Path: "/health", Method: MethodGET},
		},
	}
}
