package effects

import (
	"context"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// Menu states and events.
var (
	MenuClosed = statemachine.StringState("closed")
	MenuOpen   = statemachine.StringState("open")

	MenuToggle       = statemachine.StringEvent("toggle")
	MenuLinkClicked  = statemachine.StringEvent("link_clicked")
	MenuOutsideClick = statemachine.StringEvent("outside_click")
)

// MenuView is the class set the mobile navigation needs.
type MenuView struct {
	Open bool
}

// HamburgerClass and NavClass are "active" while the menu is open.
func (v MenuView) HamburgerClass() string { return v.activeClass() }
func (v MenuView) NavClass() string       { return v.activeClass() }

// BodyClass locks page scrolling while the menu is open.
func (v MenuView) BodyClass() string {
	if v.Open {
		return "menu-open"
	}
	return ""
}

func (v MenuView) activeClass() string {
	if v.Open {
		return "active"
	}
	return ""
}

// Menu is the mobile navigation. The toggle button opens and closes it;
// following a link or clicking outside closes it.
type Menu struct {
	fsm *statemachine.Machine
}

// NewMenu returns a closed menu.
func NewMenu() *Menu {
	return newMenu(MenuClosed)
}

// RestoreMenu rebuilds a menu from the view the browser last rendered.
func RestoreMenu(v MenuView) *Menu {
	if v.Open {
		return newMenu(MenuOpen)
	}
	return newMenu(MenuClosed)
}

func newMenu(initial statemachine.State) *Menu {
	return &Menu{fsm: statemachine.MustNew(initial,
		statemachine.WithTransition(MenuClosed, MenuOpen, MenuToggle),
		statemachine.WithTransition(MenuOpen, MenuClosed, MenuToggle),
		statemachine.WithTransition(MenuOpen, MenuClosed, MenuLinkClicked),
		statemachine.WithTransition(MenuOpen, MenuClosed, MenuOutsideClick),
		statemachine.WithSelfLoop(MenuLinkClicked, MenuClosed),
		statemachine.WithSelfLoop(MenuOutsideClick, MenuClosed),
	)}
}

// Handle applies event and returns the resulting view.
func (m *Menu) Handle(ctx context.Context, event statemachine.Event) (MenuView, error) {
	if err := m.fsm.Fire(ctx, event, nil); err != nil {
		return m.View(), ErrUnknownMenuEvent
	}
	return m.View(), nil
}

func (m *Menu) View() MenuView {
	return MenuView{Open: m.fsm.Is(MenuOpen)}
}
