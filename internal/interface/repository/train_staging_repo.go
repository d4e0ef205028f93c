package repository

import (
	"context"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTrainStagingRepository implements TrainStagingRepository. Raw
// rail rows land here before the relational upsert, keyed uniquely by
// (train number, travel date, class) so restaging is a no-op.
type MongoTrainStagingRepository struct {
	collection *mongo.Collection
}

type stagedTrain struct {
	TrainNumber     string    `bson:"trainNumber"`
	TrainName       string    `bson:"trainName"`
	SourceCode      string    `bson:"sourceStationCode"`
	SourceCity      string    `bson:"sourceCity"`
	DestinationCode string    `bson:"destinationStationCode"`
	DestinationCity string    `bson:"destinationCity"`
	TravelDate      string    `bson:"travelDate"`
	ServiceClass    string    `bson:"serviceClass"`
	Fare            float64   `bson:"fare"`
	DepartureAt     time.Time `bson:"departureAt"`
	ArrivalAt       time.Time `bson:"arrivalAt"`
	DurationText    string    `bson:"duration"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

// NewMongoTrainStagingRepository creates a new train staging repository
func NewMongoTrainStagingRepository(db *mongo.Database) repository.TrainStagingRepository {
	collection := db.Collection("train_details")

	// Create unique index on the staging natural key
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "trainNumber", Value: 1},
			{Key: "travelDate", Value: 1},
			{Key: "serviceClass", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoTrainStagingRepository{
		collection: collection,
	}
}

// Stage upserts raw rail rows into the staging collection and returns
// the number of newly staged documents.
func (r *MongoTrainStagingRepository) Stage(ctx context.Context, records []entity.TravelRecord) (int, error) {
	staged := 0
	opts := options.Update().SetUpsert(true)

	for _, record := range records {
		doc := stagedTrain{
			TrainNumber:     record.TripNumber,
			TrainName:       record.Carrier,
			SourceCode:      record.SourceCode,
			SourceCity:      record.SourceCity,
			DestinationCode: record.DestinationCode,
			DestinationCity: record.DestinationCity,
			TravelDate:      record.TravelDate,
			ServiceClass:    record.ServiceClass,
			Fare:            record.Fare,
			DepartureAt:     record.DepartureAt,
			ArrivalAt:       record.ArrivalAt,
			DurationText:    record.DurationText,
			UpdatedAt:       time.Now(),
		}

		filter := bson.M{
			"trainNumber":  doc.TrainNumber,
			"travelDate":   doc.TravelDate,
			"serviceClass": doc.ServiceClass,
		}

		result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
		if err != nil {
			return staged, err
		}
		if result.UpsertedCount > 0 {
			staged++
		}
	}
	return staged, nil
}

// FindAll returns every staged rail row, for the railsync replay.
func (r *MongoTrainStagingRepository) FindAll(ctx context.Context) ([]entity.TravelRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.TravelRecord
	for cursor.Next(ctx) {
		var doc stagedTrain
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, entity.TravelRecord{
			Provider:        entity.ProviderRail,
			Mode:            entity.ModeRail,
			SourceCode:      doc.SourceCode,
			DestinationCode: doc.DestinationCode,
			SourceCity:      doc.SourceCity,
			DestinationCity: doc.DestinationCity,
			DepartureAt:     doc.DepartureAt,
			ArrivalAt:       doc.ArrivalAt,
			TravelDate:      doc.TravelDate,
			Fare:            doc.Fare,
			Currency:        "INR",
			ServiceClass:    doc.ServiceClass,
			Carrier:         doc.TrainName,
			TripNumber:      doc.TrainNumber,
			DurationText:    doc.DurationText,
		})
	}
	return records, cursor.Err()
}
