package main

import (
	"github.com/Luismorlan/postmux/feed"
	"github.com/Luismorlan/postmux/filestore"
	"github.com/Luismorlan/postmux/server"
	"github.com/Luismorlan/postmux/server/middlewares"
	"github.com/Luismorlan/postmux/utils"
	"github.com/Luismorlan/postmux/utils/dotenv"
	"github.com/Luismorlan/postmux/utils/flag"
	Logger "github.com/Luismorlan/postmux/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	utils.StartTracer()
	utils.StartProfiler()

	// Middlewares
	middlewares.Setup()

	Logger.Log.Info("api server initialized")

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	pageCache := feed.NewRedisPageCache(utils.GetRedisClient(), feed.DefaultCacheTTL)

	var files filestore.FileStore
	if dotenv.IsProdEnv() {
		files, err = filestore.NewS3FileStore(filestore.ProdS3ImageBucket)
	} else {
		files, err = filestore.NewLocalFileStore("media")
	}
	if err != nil {
		Logger.Log.Fatal("fail to setup file store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(flag.ServiceName))
	router.Use(middlewares.Identify())

	server.NewHandlers(db, pageCache, files).Register(router)

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
