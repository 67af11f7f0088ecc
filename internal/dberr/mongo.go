package dberr

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// documentValidationFailure is the server error code for a write rejected
// by a collection's $jsonSchema validator.
const documentValidationFailure = 121

// FromMongo converts a mongo-driver error into a tagged *Error.
//
// Mapping:
//   - mongo.ErrNoDocuments           -> NotFound
//   - write error code 121           -> Validation
//   - anything else                  -> Store
//
// Already tagged errors are returned unchanged.
func FromMongo(op string, err error) error {
	if err == nil {
		return nil
	}

	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewNotFound(op)
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == documentValidationFailure {
				return New(Validation, op, err)
			}
		}
		if writeErr.WriteConcernError != nil && writeErr.WriteConcernError.Code == documentValidationFailure {
			return New(Validation, op, err)
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == documentValidationFailure {
		return New(Validation, op, err)
	}

	return New(Store, op, err)
}
