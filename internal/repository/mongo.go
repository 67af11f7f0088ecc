package repository

import (
	"context"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// studentDocument is the BSON shape of a Student.
type studentDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Name   string             `bson:"name"`
	Email  string             `bson:"email"`
	Cohort string             `bson:"cohort"`
}

func (d studentDocument) toModel() *model.Student {
	return &model.Student{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Email:  d.Email,
		Cohort: d.Cohort,
	}
}

// MongoStudentRepository stores students as documents in one collection.
type MongoStudentRepository struct {
	coll *mongo.Collection
}

func NewMongoStudentRepository(coll *mongo.Collection) *MongoStudentRepository {
	return &MongoStudentRepository{coll: coll}
}

func (r *MongoStudentRepository) List(ctx context.Context) ([]model.Student, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, dberr.FromMongo(OpList, err)
	}

	var docs []studentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dberr.FromMongo(OpList, errors.Wrap(err, "decoding students"))
	}

	students := make([]model.Student, 0, len(docs))
	for _, d := range docs {
		students = append(students, *d.toModel())
	}
	return students, nil
}

func (r *MongoStudentRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, dberr.FromMongo(OpCount, err)
	}
	return n, nil
}

func (r *MongoStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var doc studentDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(OpFindByEmail, err)
	}
	return doc.toModel(), nil
}

func (r *MongoStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	oid, err := objectID(OpFindByID, id)
	if err != nil {
		return nil, err
	}

	var doc studentDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(OpFindByID, err)
	}
	return doc.toModel(), nil
}

func (r *MongoStudentRepository) DeleteByID(ctx context.Context, id string) (*model.Student, error) {
	oid, err := objectID(OpDeleteByID, id)
	if err != nil {
		return nil, err
	}

	var doc studentDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(OpDeleteByID, err)
	}
	return doc.toModel(), nil
}

func (r *MongoStudentRepository) ReplaceByID(ctx context.Context, id string, fields model.StudentFields) (*model.Student, error) {
	oid, err := objectID(OpReplaceByID, id)
	if err != nil {
		return nil, err
	}

	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpReplaceByID, missing...)
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: fields.Name},
		{Key: "email", Value: fields.Email},
		{Key: "cohort", Value: fields.Cohort},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc studentDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(OpReplaceByID, err)
	}
	return doc.toModel(), nil
}

func (r *MongoStudentRepository) Create(ctx context.Context, fields model.StudentFields) (*model.Student, error) {
	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpCreate, missing...)
	}

	doc := studentDocument{
		ID:     primitive.NewObjectID(),
		Name:   fields.Name,
		Email:  fields.Email,
		Cohort: fields.Cohort,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, dberr.FromMongo(OpCreate, err)
	}
	return doc.toModel(), nil
}

func objectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, dberr.NewMalformedID(op, id, err)
	}
	return oid, nil
}
