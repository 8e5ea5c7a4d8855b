package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, cfg *AppConfig) (*MongoDBClient, *mongo.Database, error) {
	if cfg.MongoURI == "" {
		log.Fatal("DB uri not set")
	}
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB")

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			log.Println("MongoDB connection verified on startup")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Println("Closing MongoDB connection ...")
			return client.Disconnect(stopCtx)
		},
	})
	db := client.Database("career_go")
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// UniqueEmailIndex enforces email uniqueness on a collection at startup.
func UniqueEmailIndex(collection *mongo.Collection) {
	indexmodel := mongo.IndexModel{
		Keys:    bson.M{"email_address": 1},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, indexmodel)
	if err != nil {
		log.Fatal("Failed to create unique index on email address:", err)
	}

	log.Println("Unique index on email address created successfully")
}

func (c *MongoDBClient) GetCollection(collectionName string) *mongo.Collection {
	return c.Database.Collection(collectionName)
}
