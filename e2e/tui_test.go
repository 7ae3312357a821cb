//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startDemo(t *testing.T) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp("--demo"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("invtrack"), "Should show invtrack title")
	require.True(t, tf.SeePlain("Products (5)"), "Demo store should be listed")
	return tf
}

func TestStartupListsDemoProducts(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	out := tf.SnapshotPlain()
	for _, name := range []string{"Apple", "Banana", "Cordless Drill", "Desk Lamp", "Espresso Beans"} {
		require.Contains(t, out, name)
	}
	require.Contains(t, out, "$89.99")
}

func TestFilterNarrowsViewLive(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyFilter))
	require.True(t, tf.SeePlain("Filter:"), "Filter prompt should appear")

	mark := tf.Mark()
	require.NoError(t, tf.Type("fru"))
	require.True(t, tf.WaitForPlainAfter(mark, "Products (1)", 3*time.Second),
		"description match should leave only Apple")

	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.OutputContainsPlain("[Filter: fru]", 3*time.Second), "Filter indicator should stay after Enter")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyFilter))
	require.NoError(t, tf.SendKeys("\x7f\x7f\x7f"))
	require.NoError(t, tf.Type("an"))
	require.True(t, tf.WaitForPlainAfter(mark, "Products (2)", 3*time.Second),
		"'an' matches Banana and Espresso Beans")
}

func TestAddProductResyncs(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyAdd))
	require.True(t, tf.SeePlain("Description:"), "Create form should open")

	require.NoError(t, tf.Type("Widget"))
	require.NoError(t, tf.SendKeys(KeyTab+KeyTab))
	require.NoError(t, tf.Type("9.99"))

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.WaitForPlainAfter(mark, "Products (6)", 3*time.Second), "New product should appear after resync")
	require.Contains(t, tf.SinceMarkPlain(mark), "Widget")
}

func TestAddWithoutNameShowsNotice(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyAdd))
	require.True(t, tf.SeePlain("Description:"))

	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("Name and Price required"), "Validation notice should be shown")
	require.NotContains(t, tf.SnapshotPlain(), "Products (6)")
}

func TestDeleteAsksBeforeRemoving(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyDelete))
	require.True(t, tf.SeePlain(`Delete "Apple"? (y/n)`), "Confirmation prompt should name the product")

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys("n"))
	time.Sleep(300 * time.Millisecond)
	require.NotContains(t, tf.SinceMarkPlain(mark), "Products (4)", "Declined delete must not remove anything")

	require.NoError(t, tf.SendKeys(KeyDelete))
	require.True(t, tf.WaitForPlainAfter(mark, `Delete "Apple"? (y/n)`, 3*time.Second))
	require.NoError(t, tf.SendKeys("y"))
	require.True(t, tf.WaitForPlainAfter(mark, "Products (4)", 3*time.Second), "Confirmed delete should resync")
}

func TestHelpPopup(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlain("invtrack Help"), "Help popup should open")
	require.True(t, tf.SeePlain("Toggle this help"))
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.Quit())
	if err := tf.WaitExit(2 * time.Second); err != nil {
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal(err)
	}
}
