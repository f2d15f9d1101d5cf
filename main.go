package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/backsoul/guesshuman/pkg/config"
	"github.com/backsoul/guesshuman/pkg/handlers"
	"github.com/backsoul/guesshuman/pkg/oracle"
	"github.com/backsoul/guesshuman/pkg/redis"
	"github.com/backsoul/guesshuman/pkg/services"
	"github.com/backsoul/guesshuman/pkg/store"
	"github.com/backsoul/guesshuman/pkg/websocket"
	"github.com/valyala/fasthttp"
)

var (
	cfg         *config.Config
	gameService *services.GameService
	gameHandler *handlers.GameHandler
	hub         *websocket.Hub
)

func main() {
	log.Println("🚀 Iniciando servidor Guess Human")
	cfg = config.Load()

	// Inicializar servicios
	initServices()

	// Configurar el servidor
	server := &fasthttp.Server{
		Handler: requestHandler,
		Name:    "GuessHuman Server",
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Println("🎮 Servidor Guess Human iniciado")
	log.Printf("📱 Juego principal: http://localhost:%d", cfg.Port)
	log.Printf("🔧 API Health: http://localhost:%d/api/health", cfg.Port)
	log.Printf("🧠 Oráculo: %s (máximo %d rondas por partida)", cfg.OracleProvider, cfg.MaxRounds)
	log.Println("🔄 Presiona Ctrl+C para detener el servidor")

	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

func initServices() {
	log.Println("⚙️  Inicializando servicios...")

	// Oráculo de generación (LLM)
	gameOracle, err := oracle.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Error creando el oráculo: %v", err)
	}

	// Almacenamiento de sesiones
	sessionStore := initSessionStore()

	// Hub de espectadores
	hub = websocket.NewHub()
	go hub.Run()

	// Motor de partidas y handlers
	events := services.NewEventLogger(hub)
	gameService = services.NewGameService(sessionStore, gameOracle, events, cfg.MaxRounds)
	gameHandler = handlers.NewGameHandler(gameService, hub)
}

func initSessionStore() store.SessionStore {
	switch cfg.SessionStore {
	case "redis":
		log.Printf("🔌 Conectando a Redis en %s...", cfg.RedisAddr)
		redisClient := redis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return store.NewRedisStore(redisClient, cfg.SessionTTL)
	default:
		log.Println("💾 Usando almacenamiento de sesiones en memoria")
		return store.NewMemoryStore()
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	// Log de la petición
	log.Printf("📡 %s %s", method, path)

	// Configurar headers de respuesta
	ctx.Response.Header.Set("Server", "GuessHuman-FastHTTP/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// Headers CORS para desarrollo
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Manejar preflight requests
	if method == "OPTIONS" {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	// Enrutamiento
	switch {
	case path == "/":
		serveFile(ctx, "index.html")
	case path == "/favicon.ico":
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("🤖")

	// API Routes
	case path == "/api/health":
		gameHandler.HealthCheck(ctx)
	case path == "/api/game/start" && method == "POST":
		gameHandler.StartGame(ctx)
	case path == "/api/game/answer" && method == "POST":
		gameHandler.SubmitAnswer(ctx)

	// WebSocket de espectadores
	case path == "/ws":
		gameHandler.HandleWebSocket(ctx)

	default:
		serve404(ctx)
	}
}

func serveFile(ctx *fasthttp.RequestCtx, filename string) {
	filePath := filepath.Join(".", filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString("<h1>⚠️ Archivo no encontrado</h1><p>El archivo <strong>" + filename + "</strong> no existe en el servidor.</p>")
		return
	}

	if filepath.Ext(filename) == ".html" {
		ctx.SetContentType("text/html; charset=utf-8")
	}

	fasthttp.ServeFile(ctx, filePath)
}

func serve404(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBodyString(`
		<!DOCTYPE html>
		<html>
		<head><title>404 - Página no encontrada</title></head>
		<body style="font-family: Arial, sans-serif; background: #16213e; color: white; text-align: center; padding: 50px;">
			<h1>🤖 404 - Página no encontrada</h1>
			<p>La página que buscas no existe en este servidor.</p>
			<a href="/" style="color: #ffd700;">🏠 Ir al Juego</a>
			<div style="margin-top: 20px; text-align: left; display: inline-block;">
				<h3>🔧 Endpoints API disponibles:</h3>
				<div>GET /api/health</div>
				<div>POST /api/game/start</div>
				<div>POST /api/game/answer</div>
				<div>WS /ws</div>
			</div>
		</body>
		</html>
	`)
}
