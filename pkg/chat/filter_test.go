package chat_test

import (
	"testing"

	"github.com/jihoonly/matzip/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestChat(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chat Suite")
}

var _ = Describe("FilterContent", func() {
	It("should strip a planning block terminated by a blank line", func() {
		text := "Plan: look up the restaurant first\n\nHere is what I found."

		Expect(chat.FilterContent(text)).To(Equal("Here is what I found."))
	})

	It("should strip a planning block that runs to the end of the text", func() {
		text := "Here you go.\n\nPlan: next I will search reviews"

		Expect(chat.FilterContent(text)).To(Equal("Here you go."))
	})

	It("should strip inline image and map tags", func() {
		text := "Try this place [IMAGE:http://img/1.jpg] on the map [MAP:37.5,127.0,A]."

		Expect(chat.FilterContent(text)).To(Equal("Try this place  on the map ."))
	})

	It("should strip the search-result-image label", func() {
		text := "[검색 결과 이미지] Bibimbap is a rice dish."

		Expect(chat.FilterContent(text)).To(Equal("Bibimbap is a rice dish."))
	})

	It("should trim surrounding whitespace", func() {
		Expect(chat.FilterContent("  hello  \n")).To(Equal("hello"))
	})

	It("should be idempotent", func() {
		inputs := []string{
			"Plan: think\n\nAnswer [IMAGE:http://a] and [MAP:1,2,X]\n",
			"[검색 결과 이미지] result",
			"no annotations at all",
			"Plan: only a plan",
			"",
		}
		for _, input := range inputs {
			once := chat.FilterContent(input)
			Expect(chat.FilterContent(once)).To(Equal(once), "input %q", input)
		}
	})
})

var _ = Describe("ToolDisplayName", func() {
	It("should map known backend tools to display labels", func() {
		Expect(chat.ToolDisplayName("search_restaurant_info")).To(Equal("Restaurant search"))
		Expect(chat.ToolDisplayName("get_nutrition_info")).To(Equal("Nutrition lookup"))
	})

	It("should fall back to the identifier for unknown tools", func() {
		Expect(chat.ToolDisplayName("mystery_tool")).To(Equal("mystery_tool"))
	})
})
