// Package metrics publishes operational metrics to CloudWatch.
// file: metrics/metrics.go
package metrics

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"go-ballpark/api"
	"go-ballpark/logger"
)

// Namespace for all ballpark metrics.
const Namespace = "Ballpark"

// Datum is one metric sample.
type Datum struct {
	Name      string
	Value     float64
	Unit      string
	Dimension string // value of the "Operation" dimension; empty for none
	At        time.Time
}

// Publisher records metric samples.
type Publisher interface {
	Put(d Datum)
}

// Noop discards every sample.
type Noop struct{}

// Put implements Publisher.
func (Noop) Put(Datum) {}

// CloudWatch queues samples and sends them from a single worker.
type CloudWatch struct {
	client cloudwatchiface.CloudWatchAPI
	queue  chan Datum
}

// NewCloudWatch creates a publisher using the default AWS credential chain.
func NewCloudWatch() (*CloudWatch, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return NewCloudWatchWithClient(cloudwatch.New(sess)), nil
}

// NewCloudWatchWithClient wraps an existing client.
func NewCloudWatchWithClient(client cloudwatchiface.CloudWatchAPI) *CloudWatch {
	return &CloudWatch{client: client, queue: make(chan Datum, 512)}
}

// Put queues d; samples are dropped when the queue is full.
func (cw *CloudWatch) Put(d Datum) {
	if d.At.IsZero() {
		d.At = time.Now()
	}
	select {
	case cw.queue <- d:
	default:
		logger.Warn.Printf("[metrics] queue full; dropping %s", d.Name)
	}
}

// Run sends queued samples until stop is closed.
func (cw *CloudWatch) Run(stop <-chan struct{}) {
	for {
		select {
		case d := <-cw.queue:
			cw.send(d)
		case <-stop:
			return
		}
	}
}

func (cw *CloudWatch) send(d Datum) {
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(d.Name),
		Timestamp:  aws.Time(d.At),
		Value:      aws.Float64(d.Value),
		Unit:       aws.String(d.Unit),
	}
	if d.Dimension != "" {
		datum.Dimensions = []*cloudwatch.Dimension{{
			Name:  aws.String("Operation"),
			Value: aws.String(d.Dimension),
		}}
	}
	_, err := cw.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(Namespace),
		MetricData: []*cloudwatch.MetricDatum{datum},
	})
	if err != nil {
		logger.Error.Printf("[metrics] CloudWatch metric failed (%s): %v", d.Name, err)
	}
}

// APIObserver records backend latency for every call and a failure count
// for calls that did not succeed.
func APIObserver(pub Publisher) api.Observer {
	return func(c api.Call) {
		pub.Put(Datum{
			Name:      "BackendLatencyMs",
			Value:     float64(c.Elapsed) / float64(time.Millisecond),
			Unit:      cloudwatch.StandardUnitMilliseconds,
			Dimension: c.Op,
		})
		if c.Err != nil {
			pub.Put(Datum{Name: "BackendFailures", Value: 1, Unit: cloudwatch.StandardUnitCount, Dimension: c.Op})
		}
	}
}

// ConnectionGauge returns a hub gauge publishing the open connection count.
func ConnectionGauge(pub Publisher) func(count int) {
	return func(count int) {
		pub.Put(Datum{Name: "LiveConnections", Value: float64(count), Unit: cloudwatch.StandardUnitCount})
	}
}

// VisitorGauge publishes the number of visitors held in memory.
func VisitorGauge(pub Publisher, count int) {
	pub.Put(Datum{Name: "ActiveVisitors", Value: float64(count), Unit: cloudwatch.StandardUnitCount})
}
