package synthex

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 10
)

// JobsService groups the job endpoints. Get one from [Client.Jobs].
type JobsService struct {
	client *Client
}

// List returns one page of the user's jobs. A limit of zero or less
// requests the server default page size of 10; offset is clamped at zero.
func (s *JobsService) List(ctx context.Context, limit, offset int) (*ListJobsResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return getData[ListJobsResponse](ctx, s.client, listJobsEndpoint, query)
}

// GenerateDataRequest describes a data generation job and where to put
// its output.
type GenerateDataRequest struct {
	// Schema declares the output fields. Required.
	Schema SchemaDefinition

	// Examples must each have exactly the keys of Schema.
	Examples []Example

	// Requirements are free-form instructions for the generator.
	Requirements []string

	// NumberOfSamples must satisfy 0 < n < 1000.
	NumberOfSamples int

	// OutputFormat defaults to [FormatCSV].
	OutputFormat OutputFormat

	// OutputPath is reconciled with OutputFormat by [NormalizeOutputPath].
	OutputPath string
}

func (r *GenerateDataRequest) format() OutputFormat {
	if r.OutputFormat == "" {
		return FormatCSV
	}
	return r.OutputFormat
}

// validate runs every client-side check in order: output path first,
// then examples, schema and bounds. Nothing here touches the network.
func (r *GenerateDataRequest) validate() (OutputSink, error) {
	if r == nil {
		return OutputSink{}, validationError("request is required", nil)
	}
	sink, err := NormalizeOutputPath(r.OutputPath, r.format())
	if err != nil {
		return OutputSink{}, err
	}
	if err := ValidateExamples(r.Examples, r.Schema); err != nil {
		return OutputSink{}, err
	}
	if err := ValidateSchema(r.Schema); err != nil {
		return OutputSink{}, err
	}
	if err := ValidateJobBounds(r.NumberOfSamples); err != nil {
		return OutputSink{}, err
	}
	return sink, nil
}

func (r *GenerateDataRequest) jobRequest() *JobRequest {
	examples := r.Examples
	if examples == nil {
		examples = []Example{}
	}
	requirements := r.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return &JobRequest{
		OutputSchema: r.Schema,
		Examples:     examples,
		Requirements: requirements,
		DatapointNum: r.NumberOfSamples,
	}
}

// GenerateResult summarizes a finished [JobsService.GenerateData] call.
type GenerateResult struct {
	// Path is the normalized output path.
	Path string

	// Batches is the number of events received.
	Batches int

	// Records is the number of records in the last batch, which is what
	// the output file holds.
	Records int

	// Written is false when the stream carried no events, in which case
	// no file was created.
	Written bool
}

// GenerateData submits a generation job and writes the streamed records
// to the normalized output path as they arrive.
//
// Every event replaces the file contents: when the server sends several
// batches the file holds only the last one. A stream with no events
// creates no file.
//
// Example:
//
//	res, err := client.Jobs.GenerateData(ctx, &synthex.GenerateDataRequest{
//	    Schema: synthex.SchemaDefinition{
//	        "question": {Type: synthex.FieldString},
//	        "answer":   {Type: synthex.FieldString},
//	    },
//	    Examples: []synthex.Example{
//	        {"question": "2+2?", "answer": "4"},
//	    },
//	    NumberOfSamples: 20,
//	    OutputPath:      "./data/questions.csv",
//	})
func (s *JobsService) GenerateData(ctx context.Context, req *GenerateDataRequest) (res *GenerateResult, err error) {
	log := s.client.logger

	sink, err := req.validate()
	if err != nil {
		log.Debug("job request rejected", zap.Error(err))
		return nil, err
	}

	stream, err := s.open(ctx, req)
	if err != nil {
		return nil, err
	}
	defer closeStream(stream, &err)

	out := newCSVSink(sink.Path())
	res = &GenerateResult{Path: sink.Path()}
	for stream.Next() {
		batch := stream.Batch()
		if err := out.write(batch); err != nil {
			return nil, err
		}
		res.Batches++
		res.Records = len(batch)
		res.Written = true
		s.client.metrics.addRecords(len(batch))
		log.Debug("batch written",
			zap.String("path", res.Path),
			zap.Int("records", len(batch)),
			zap.Int("batch", res.Batches),
		)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
