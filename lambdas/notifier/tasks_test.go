package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/databasemigrationservice/types"
)

func TestLookupTaskName(t *testing.T) {
	tests := []struct {
		name    string
		tasks   *fakeTasks
		want    string
		wantErr bool
	}{
		{name: "found", tasks: &fakeTasks{name: "orders-cdc"}, want: "orders-cdc"},
		{name: "no match", tasks: &fakeTasks{}, want: unknownValue},
		{name: "not found fault", tasks: &fakeTasks{err: &types.ResourceNotFoundFault{}}, want: unknownValue},
		{name: "api error", tasks: &fakeTasks{err: errors.New("access denied")}, want: unknownValue, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookupTaskName(context.Background(), tt.tasks, testTaskARN)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("lookupTaskName = %q, want %q", got, tt.want)
			}
			if !aws.ToBool(tt.tasks.input.WithoutSettings) {
				t.Error("task settings requested")
			}
		})
	}
}
