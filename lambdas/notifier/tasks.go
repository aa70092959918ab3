package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
	"github.com/aws/aws-sdk-go-v2/service/databasemigrationservice/types"
)

// ReplicationTaskDescriber is the part of the DMS client the relay uses.
type ReplicationTaskDescriber interface {
	DescribeReplicationTasks(ctx context.Context, params *databasemigrationservice.DescribeReplicationTasksInput, optFns ...func(*databasemigrationservice.Options)) (*databasemigrationservice.DescribeReplicationTasksOutput, error)
}

// lookupTaskName resolves a replication task ARN to its identifier. A task that
// does not exist yields unknownValue with a nil error.
func lookupTaskName(ctx context.Context, tasks ReplicationTaskDescriber, taskARN string) (string, error) {
	out, err := tasks.DescribeReplicationTasks(ctx, &databasemigrationservice.DescribeReplicationTasksInput{
		Filters: []types.Filter{
			{Name: aws.String("replication-task-arn"), Values: []string{taskARN}},
		},
		WithoutSettings: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundFault
		if errors.As(err, &notFound) {
			return unknownValue, nil
		}
		return unknownValue, fmt.Errorf("describe replication tasks: %w", err)
	}

	if len(out.ReplicationTasks) == 0 {
		return unknownValue, nil
	}
	name := aws.ToString(out.ReplicationTasks[0].ReplicationTaskIdentifier)
	if name == "" {
		return unknownValue, nil
	}
	return name, nil
}
