// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"solecare/models"
)

func (r *mongoAvailabilityRepo) GetAllDays(ctx context.Context) ([]models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []models.AvailabilityDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *mongoAvailabilityRepo) GetTimes(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.AvailabilityDay
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return day.Times, nil
}

func (r *mongoAvailabilityRepo) SetDay(ctx context.Context, date string, times []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if len(times) == 0 {
		_, err := r.coll.DeleteOne(ctx, bson.M{"date": date})
		return err
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"date": date},
		bson.M{"$set": bson.M{"times": times}}, opts)
	return err
}

func (r *mongoAvailabilityRepo) AddSlot(ctx context.Context, date, slotTime string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"date": date},
		bson.M{"$addToSet": bson.M{"times": slotTime}}, opts)
	return err
}

func (r *mongoAvailabilityRepo) RemoveSlot(ctx context.Context, date, slotTime string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"date": date},
		bson.M{"$pull": bson.M{"times": slotTime}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	// Drop the day entirely once its last slot is gone.
	_, err = r.coll.DeleteOne(ctx, bson.M{"date": date, "times": bson.M{"$size": 0}})
	return err
}
