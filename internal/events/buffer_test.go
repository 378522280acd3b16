package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	Context("push and pop", func() {
		It("pops messages in insertion order", func() {
			b := newBuffer()
			Expect(b.PushBack(&message{Kind: "k1"})).To(Succeed())
			Expect(b.PushBack(&message{Kind: "k2"})).To(Succeed())
			Expect(b.PushBack(&message{Kind: "k3"})).To(Succeed())
			Expect(b.Size()).To(Equal(3))

			Expect(b.Pop().Kind).To(Equal("k1"))
			Expect(b.Pop().Kind).To(Equal("k2"))
			Expect(b.Pop().Kind).To(Equal("k3"))
			Expect(b.Size()).To(Equal(0))
		})

		It("returns nil when empty", func() {
			b := newBuffer()
			Expect(b.Pop()).To(BeNil())
		})

		It("accepts pushes after draining", func() {
			b := newBuffer()
			Expect(b.PushBack(&message{Kind: "k1"})).To(Succeed())
			Expect(b.Pop().Kind).To(Equal("k1"))

			Expect(b.PushBack(&message{Kind: "k2"})).To(Succeed())
			Expect(b.Pop().Kind).To(Equal("k2"))
		})
	})
})
