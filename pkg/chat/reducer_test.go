package chat_test

import (
	"github.com/jihoonly/matzip/pkg/chat"
	"github.com/jihoonly/matzip/pkg/events"
	"github.com/jihoonly/matzip/pkg/places"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reducer", func() {
	var reducer *chat.Reducer

	BeforeEach(func() {
		reducer = chat.NewReducer()
	})

	It("should start with a single welcome message", func() {
		messages := reducer.Messages()

		Expect(messages).To(HaveLen(1))
		Expect(messages[0].IsAssistant()).To(BeTrue())
		Expect(reducer.State()).To(Equal(chat.StateIdle))
	})

	Describe("a streaming turn", func() {
		BeforeEach(func() {
			reducer.Begin(chat.NewUserMessage("where should I eat?", nil))
		})

		It("should append the user message and enter streaming state", func() {
			messages := reducer.Messages()

			Expect(messages).To(HaveLen(2))
			Expect(messages[1].IsUser()).To(BeTrue())
			Expect(reducer.Streaming()).To(BeTrue())
		})

		It("should upsert a single in-progress message as text arrives", func() {
			reducer.Apply(events.Event{Type: events.TypeText, Content: "Hel"})
			reducer.Apply(events.Event{Type: events.TypeText, Content: "lo"})

			messages := reducer.Messages()
			Expect(messages).To(HaveLen(3))
			Expect(messages[2].ID).To(Equal(chat.StreamingMessageID))
			Expect(messages[2].Content).To(Equal("Hello"))
		})

		It("should filter the whole accumulated buffer, not the delta", func() {
			// The tag spans two deltas; filtering per delta would leak it.
			reducer.Apply(events.Event{Type: events.TypeText, Content: "See [IMAGE:http://im"})
			reducer.Apply(events.Event{Type: events.TypeText, Content: "g/1.jpg] here"})

			messages := reducer.Messages()
			Expect(messages[2].Content).To(Equal("See  here"))
		})

		It("should track tool usage and activity", func() {
			reducer.Apply(events.Event{Type: events.TypeTool, Tool: "search_restaurant_info", Status: events.StatusStart})

			Expect(reducer.ToolsUsed()).To(Equal([]string{"Restaurant search"}))
			Expect(reducer.Activity()).To(Equal("Restaurant search..."))

			reducer.Apply(events.Event{Type: events.TypeToolProgress, Status: "Reading reviews (3/10)"})
			Expect(reducer.Activity()).To(Equal("Reading reviews (3/10)"))

			reducer.Apply(events.Event{Type: events.TypeTool, Tool: "search_restaurant_info", Status: events.StatusDone})
			Expect(reducer.Activity()).To(BeEmpty())
			Expect(reducer.ToolsUsed()).To(Equal([]string{"Restaurant search"}), "tool done must not clear the used list")
		})

		It("should finalize with the filtered text and captured payload", func() {
			reducer.Apply(events.Event{Type: events.TypeText, Content: "Hello"})
			reducer.Apply(events.Event{Type: events.TypeText, Content: " world"})
			reducer.Apply(events.Event{Type: events.TypeDone, MapURL: "37.5,127.0,A", Images: []string{"http://img/1.jpg"}})

			Expect(reducer.State()).To(Equal(chat.StateFinalized))

			final := reducer.Finish()
			Expect(final.Content).To(Equal("Hello world"))
			Expect(final.MapPayload).To(Equal("37.5,127.0,A"))
			Expect(final.Images).To(Equal([]string{"http://img/1.jpg"}))
			Expect(final.ID).NotTo(Equal(chat.StreamingMessageID))

			messages := reducer.Messages()
			Expect(messages).To(HaveLen(3))
			Expect(messages[2].ID).To(Equal(final.ID))

			decoded := places.Parse(final.MapPayload)
			Expect(decoded).To(Equal([]places.Place{{Lat: 37.5, Lng: 127.0, Name: "A"}}))
		})

		It("should attach the restaurant summary from the done event", func() {
			reducer.Apply(events.Event{Type: events.TypeText, Content: "Try this one."})
			reducer.Apply(events.Event{Type: events.TypeDone, Restaurant: &events.Restaurant{
				Name:    "Kimchi House",
				Cuisine: "Korean",
				Rating:  4.5,
			}})

			final := reducer.Finish()
			Expect(final.Restaurant).NotTo(BeNil())
			Expect(final.Restaurant.Name).To(Equal("Kimchi House"))
			Expect(final.Restaurant.Rating).To(Equal(4.5))
		})

		It("should fail with the event's message", func() {
			reducer.Apply(events.Event{Type: events.TypeText, Content: "half an ans"})
			reducer.Apply(events.Event{Type: events.TypeError, Message: "backend exploded"})

			Expect(reducer.State()).To(Equal(chat.StateFailed))
			notice, ok := reducer.Notification()
			Expect(ok).To(BeTrue())
			Expect(notice).To(Equal("backend exploded"))

			final := reducer.Finish()
			Expect(final.Content).NotTo(ContainSubstring("half an ans"), "partial text must be discarded on failure")

			for _, m := range reducer.Messages() {
				Expect(m.ID).NotTo(Equal(chat.StreamingMessageID))
			}
		})

		It("should stay failed when late events trail an error", func() {
			reducer.Apply(events.Event{Type: events.TypeText, Content: "half an ans"})
			reducer.Apply(events.Event{Type: events.TypeError, Message: "backend exploded"})
			reducer.Apply(events.Event{Type: events.TypeText, Content: "wer"})
			reducer.Apply(events.Event{Type: events.TypeDone, MapURL: "37.5,127.0,A"})

			Expect(reducer.State()).To(Equal(chat.StateFailed))

			final := reducer.Finish()
			Expect(final.Content).NotTo(ContainSubstring("half an ans"))
			Expect(final.MapPayload).To(BeEmpty())
		})

		It("should use a generic notification when the error event has no message", func() {
			reducer.Apply(events.Event{Type: events.TypeError})

			notice, ok := reducer.Notification()
			Expect(ok).To(BeTrue())
			Expect(notice).NotTo(BeEmpty())
		})

		It("should route transport failures through the same path", func() {
			reducer.Fail("")
			reducer.Finish()

			Expect(reducer.State()).To(Equal(chat.StateIdle))
			_, ok := reducer.Notification()
			Expect(ok).To(BeTrue())
		})
	})

	Describe("tools-used grace period", func() {
		It("should retain the list through Finish and clear it on expiry", func() {
			reducer.Begin(chat.NewUserMessage("hi", nil))
			reducer.Apply(events.Event{Type: events.TypeTool, Tool: "search_recipe_online", Status: events.StatusStart})
			reducer.Apply(events.Event{Type: events.TypeDone})
			reducer.Finish()

			Expect(reducer.ToolsUsed()).To(HaveLen(1))

			reducer.ExpireTools()
			Expect(reducer.ToolsUsed()).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("should return to a single greeting regardless of history", func() {
			reducer.Begin(chat.NewUserMessage("one", nil))
			reducer.Apply(events.Event{Type: events.TypeText, Content: "a"})
			reducer.Apply(events.Event{Type: events.TypeDone})
			reducer.Finish()
			reducer.Begin(chat.NewUserMessage("two", nil))

			reducer.Reset()

			messages := reducer.Messages()
			Expect(messages).To(HaveLen(1))
			Expect(messages[0].IsAssistant()).To(BeTrue())
			Expect(reducer.State()).To(Equal(chat.StateIdle))
			Expect(reducer.ToolsUsed()).To(BeEmpty())
		})
	})
})
