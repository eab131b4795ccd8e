package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"housing-service/cache"
	"housing-service/config"
	"housing-service/handlers"
	"housing-service/repository"
	"housing-service/routes"
	"housing-service/services"
)

var (
	server      *gin.Engine
	ctx         context.Context
	cfg         *config.Config
	mongoclient *mongo.Client

	userCollection     *mongo.Collection
	propertyCollection *mongo.Collection
	bookingCollection  *mongo.Collection
	messageCollection  *mongo.Collection
	reviewCollection   *mongo.Collection

	imageCache *cache.ImageCache

	userService     services.UserService
	authService     services.AuthService
	propertyService services.PropertyService
	listingService  services.ListingService
	bookingService  services.BookingService
	messageService  services.MessageService
	reviewService   services.ReviewService

	authRouteHandler     routes.AuthRouteHandler
	propertyRouteHandler routes.PropertyRouteHandler
	listingRouteHandler  routes.ListingRouteHandler
	bookingRouteHandler  routes.BookingRouteHandler
	messageRouteHandler  routes.MessageRouteHandler
	reviewRouteHandler   routes.ReviewRouteHandler
)

func init() {
	ctx = context.TODO()
	cfg = config.LoadConfig()

	mongoconn := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, mongoconn)
	if err != nil {
		panic(err)
	}
	mongoclient = client

	if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}
	fmt.Println("MongoDB successfully connected...")

	tracerProvider, err := NewTracerProvider(cfg.ServiceName, cfg.JaegerAddress)
	if err != nil {
		log.Fatal("JaegerTraceProvider failed to Initialize", err)
	}
	tracer := tracerProvider.Tracer(cfg.ServiceName)

	db := mongoclient.Database(cfg.MongoDatabase)
	userCollection = db.Collection("users")
	propertyCollection = db.Collection("properties")
	bookingCollection = db.Collection("bookings")
	messageCollection = db.Collection("messages")
	reviewCollection = db.Collection("reviews")

	stdLogger := log.New(os.Stdout, "[housing-service] ", log.LstdFlags)
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	imageCache = cache.New(cfg.RedisHost, cfg.RedisPort, logger, tracer)
	if err := imageCache.Ping(); err != nil {
		logger.WithError(err).Warn("redis unreachable, image cache disabled")
	}

	userRepo := repository.NewUserRepo(userCollection, stdLogger)
	propertyRepo := repository.NewPropertyRepo(propertyCollection, stdLogger)
	bookingRepo := repository.NewBookingRepo(bookingCollection, stdLogger)
	messageRepo := repository.NewMessageRepo(messageCollection, stdLogger)
	reviewRepo := repository.NewReviewRepo(reviewCollection, stdLogger)

	notifier := services.NewNotificationServiceImpl(cfg, logger)
	geocoder := services.NewGeocodeServiceImpl(cfg.GeocoderBaseURL, logger, tracer)

	userService = services.NewUserServiceImpl(userRepo)
	authService = services.NewAuthServiceImpl(userRepo, notifier, cfg.SecretKey, logger)
	propertyService = services.NewPropertyServiceImpl(propertyRepo, geocoder, imageCache, logger, tracer)
	listingService = services.NewListingServiceImpl(propertyRepo, tracer)
	bookingService = services.NewBookingServiceImpl(bookingRepo, propertyRepo, notifier, cfg.CompletionPolicy, logger, tracer)
	messageService = services.NewMessageServiceImpl(messageRepo, tracer)
	reviewService = services.NewReviewServiceImpl(reviewRepo, propertyRepo, bookingRepo, logger, tracer)

	requireUser := handlers.DeserializeUser(userService, cfg.SecretKey)

	authHandler := handlers.NewAuthHandler(authService, tracer)
	propertyHandler := handlers.NewPropertyHandler(propertyService, tracer)
	listingHandler := handlers.NewListingHandler(listingService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer)
	messageHandler := handlers.NewMessageHandler(messageService, tracer)
	reviewHandler := handlers.NewReviewHandler(reviewService, tracer)

	authRouteHandler = routes.NewAuthRouteHandler(authHandler, requireUser)
	propertyRouteHandler = routes.NewPropertyRouteHandler(propertyHandler, requireUser)
	listingRouteHandler = routes.NewListingRouteHandler(listingHandler)
	bookingRouteHandler = routes.NewBookingRouteHandler(bookingHandler, requireUser)
	messageRouteHandler = routes.NewMessageRouteHandler(messageHandler, requireUser)
	reviewRouteHandler = routes.NewReviewRouteHandler(reviewHandler, requireUser)

	server = gin.Default()
}

func main() {
	defer mongoclient.Disconnect(ctx)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:4200"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	server.Use(cors.New(corsConfig))

	router := server.Group("/api")
	router.GET("/healthchecker", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "housing service up"})
	})

	authRouteHandler.AuthRoute(router)
	propertyRouteHandler.PropertyRoute(router)
	listingRouteHandler.ListingRoute(router)
	bookingRouteHandler.BookingRoute(router)
	messageRouteHandler.MessageRoute(router)
	reviewRouteHandler.ReviewRoute(router)

	err := server.Run(":" + cfg.Port)
	if err != nil {
		fmt.Println(err)
		return
	}
}

func NewTracerProvider(serviceName, collectorEndpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collectorEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("unable to initialize exporter due: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String("development"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
