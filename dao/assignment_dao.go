// dao/assignment_dao.go
package dao

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	logger "github.com/campusforge/aegis/logging"
)

// AssignmentDAO answers course-assignment lookups against the graph
// store: is this teacher assigned to this course for this semester. The
// result feeds context enrichment as the "isAssigned" attribute.
type AssignmentDAO struct {
	Driver neo4j.Driver
}

func NewAssignmentDAO(driver neo4j.Driver) *AssignmentDAO {
	return &AssignmentDAO{Driver: driver}
}

func (dao *AssignmentDAO) IsAssignedToCourse(ctx context.Context, teacherID, courseID, semesterID string) (bool, error) {
	start := time.Now()

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (t:Teacher {id: $teacherID})-[a:ASSIGNED_TO]->(c:Course {id: $courseID})
        WHERE a.semesterId = $semesterID
        RETURN count(a) > 0 AS assigned
        `

		params := map[string]interface{}{
			"teacherID":  teacherID,
			"courseID":   courseID,
			"semesterID": semesterID,
		}

		res, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}
		if res.Next() {
			assigned, _ := res.Record().Get("assigned")
			return assigned.(bool), nil
		}
		return false, res.Err()
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to check course assignment",
			zap.Error(err),
			zap.String("teacherID", teacherID),
			zap.String("courseID", courseID),
			zap.Duration("duration", duration))
		return false, err
	}

	assigned := result.(bool)
	logger.Debug("Course assignment checked",
		zap.String("teacherID", teacherID),
		zap.String("courseID", courseID),
		zap.Bool("assigned", assigned),
		zap.Duration("duration", duration))
	return assigned, nil
}
