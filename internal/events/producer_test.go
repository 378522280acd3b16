package events

import (
	"bytes"
	"context"
	"testing"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "events suite")
}

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			ep := NewEventProducer(w)

			msg := []byte("msg1")
			err := ep.Write(context.TODO(), TransitionMessageKind, bytes.NewReader(msg))
			Expect(err).To(BeNil())

			msg = []byte("msg2")
			err = ep.Write(context.TODO(), TalentMessageKind, bytes.NewReader(msg))
			Expect(err).To(BeNil())

			Eventually(func() int { return len(w.Messages) }, 2*time.Second).Should(Equal(2))
			Expect(w.Messages[0].Context.GetType()).To(Equal(TransitionMessageKind))
			Expect(w.Messages[1].Context.GetType()).To(Equal(TalentMessageKind))

			ep.Close()
		})
	})
})

type testwriter struct {
	Messages []cloudevents.Event
}

func newTestWriter() *testwriter {
	return &testwriter{Messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.Messages = append(t.Messages, e)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
}
